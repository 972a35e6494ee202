// Package ffprobe wraps ffprobe JSON inspection of audio files.
package ffprobe
