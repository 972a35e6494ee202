// Package pipeline sequences the processing stages (normalize, enhance,
// encode) over a per-run working area, validating that each stage produced
// output before the next may consume it. After encoding it tears the working
// area down: the normalized intermediate goes unconditionally, the enhanced
// intermediate only after confirmation.
package pipeline
