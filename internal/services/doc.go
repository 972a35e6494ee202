// Package services defines the shared error taxonomy used across pipeline
// stages and the CLI exit-code mapping derived from it.
package services
