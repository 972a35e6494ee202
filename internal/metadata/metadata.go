// Package metadata preserves source-file tags and artwork across the
// pipeline. Because the canonical WAV intermediate cannot carry most tag
// data, an ffprobe snapshot of each source file is written as a JSON sidecar
// next to its normalized WAV and replayed as ffmpeg arguments at encode time.
//
// Everything here is best-effort: a file that loses its tags still ships.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aurify/internal/fileutil"
	"aurify/internal/media/ffprobe"
)

// SidecarSuffix is appended to a normalized file's stem to name its sidecar.
const SidecarSuffix = ".metadata.json"

// IsSidecar reports whether the file name is a metadata sidecar.
func IsSidecar(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), SidecarSuffix)
}

// SidecarPath returns the sidecar location for a normalized file.
func SidecarPath(normalizedPath string) string {
	dir := filepath.Dir(normalizedPath)
	return filepath.Join(dir, fileutil.Stem(normalizedPath)+SidecarSuffix)
}

// Extract inspects the source file with ffprobe.
func Extract(ctx context.Context, ffprobeBinary, sourcePath string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, ffprobeBinary, sourcePath)
}

// Save writes the inspection result as a sidecar next to normalizedPath.
func Save(result ffprobe.Result, normalizedPath string) error {
	payload := result.RawJSON()
	if len(payload) == 0 {
		var err error
		payload, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
	}
	return os.WriteFile(SidecarPath(normalizedPath), payload, 0o644)
}

// Load reads the sidecar for normalizedPath. A missing sidecar is not an
// error; it returns ok=false.
func Load(normalizedPath string) (ffprobe.Result, bool, error) {
	payload, err := os.ReadFile(SidecarPath(normalizedPath))
	if err != nil {
		if os.IsNotExist(err) {
			return ffprobe.Result{}, false, nil
		}
		return ffprobe.Result{}, false, fmt.Errorf("read metadata sidecar: %w", err)
	}
	var result ffprobe.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return ffprobe.Result{}, false, fmt.Errorf("parse metadata sidecar: %w", err)
	}
	return result, true, nil
}

// FindOriginal locates the source file matching a normalized file's stem.
// Used to pull embedded artwork from the original at encode time.
func FindOriginal(normalizedPath, sourceDir string) string {
	if strings.TrimSpace(sourceDir) == "" {
		return ""
	}
	stem := fileutil.Stem(normalizedPath)
	files, err := fileutil.ListAudioFiles(sourceDir)
	if err != nil {
		return ""
	}
	for _, candidate := range files {
		if fileutil.Stem(candidate) == stem {
			return candidate
		}
	}
	return ""
}

// tagFields maps output tag names to the source tag keys consulted for each,
// in priority order.
var tagFields = []struct {
	name string
	keys []string
}{
	{"title", []string{"title", "TITLE"}},
	{"artist", []string{"artist", "ARTIST", "album_artist", "ALBUM_ARTIST"}},
	{"album", []string{"album", "ALBUM"}},
	{"date", []string{"date", "DATE", "year"}},
	{"genre", []string{"genre", "GENRE"}},
	{"track", []string{"track", "TRACK"}},
	{"album_artist", []string{"album_artist", "ALBUM_ARTIST", "artist"}},
	{"composer", []string{"composer", "COMPOSER"}},
	{"comment", []string{"comment", "COMMENT"}},
}

// BuildArgs produces the ffmpeg arguments that re-apply tags, and when the
// source carried embedded artwork and originalPath is known, map the artwork
// stream from the original into the output.
func BuildArgs(result ffprobe.Result, originalPath string) []string {
	var args []string

	if result.HasAttachedArtwork() && strings.TrimSpace(originalPath) != "" {
		args = append(args,
			"-i", originalPath,
			"-map", "0:a",
			"-map", "1:v?",
			"-c:v", "copy",
			"-disposition:v:0", "attached_pic",
		)
	}

	tags := result.Format.Tags
	for _, field := range tagFields {
		value := tagValue(tags, field.keys)
		if value == "" {
			continue
		}
		args = append(args, "-metadata", field.name+"="+value)
	}
	return args
}

func tagValue(tags map[string]string, keys []string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(tags[key]); value != "" {
			return value
		}
	}
	return ""
}
