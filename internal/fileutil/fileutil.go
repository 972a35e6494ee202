// Package fileutil holds small filesystem helpers shared by the pipeline
// stages.
package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// audioExtensions covers the input formats the normalizer accepts. Detection
// is by extension; ffmpeg sorts out anything mislabelled.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".aac":  {},
	".flac": {},
	".ogg":  {},
	".wma":  {},
	".aiff": {},
	".au":   {},
	".ra":   {},
	".3gp":  {},
	".amr":  {},
	".opus": {},
	".wav":  {},
}

// IsAudioFile reports whether the path looks like an audio file by extension.
func IsAudioFile(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ListFiles returns the regular files directly under dir that satisfy keep,
// sorted by name. A nil keep accepts everything.
func ListFiles(dir string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if keep != nil && !keep(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// ListAudioFiles returns the audio files directly under dir, sorted by name.
func ListAudioFiles(dir string) ([]string, error) {
	return ListFiles(dir, IsAudioFile)
}

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Stem returns the file name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
