// Package logging constructs the slog loggers used throughout aurify and
// provides the structured attribute helpers shared by the pipeline stages.
//
// Two output formats are supported: a human-oriented console format used for
// interactive runs and a JSON format for machine consumption. Loggers carry a
// component attribute so console output can group lines by origin.
package logging
