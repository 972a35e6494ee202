package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"aurify/internal/fileutil"
)

func TestIsAudioFile(t *testing.T) {
	cases := map[string]bool{
		"track.mp3":           true,
		"track.FLAC":          true,
		"book.m4a":            true,
		"voice.opus":          true,
		"cover.jpg":           false,
		"notes.txt":           false,
		"track.metadata.json": false,
	}
	for path, want := range cases {
		if got := fileutil.IsAudioFile(path); got != want {
			t.Fatalf("IsAudioFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestListAudioFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.flac", "cover.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := fileutil.ListAudioFiles(dir)
	if err != nil {
		t.Fatalf("ListAudioFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 audio files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.flac" || filepath.Base(files[1]) != "b.mp3" {
		t.Fatalf("unexpected order: %v", files)
	}
}

func TestListFilesMissingDir(t *testing.T) {
	if _, err := fileutil.ListFiles(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.wav")
	dst := filepath.Join(dir, "dst.wav")
	if err := os.WriteFile(src, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "RIFFdata" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestStem(t *testing.T) {
	if got := fileutil.Stem("/tmp/chapter 01.mp3"); got != "chapter 01" {
		t.Fatalf("Stem = %q", got)
	}
	if got := fileutil.Stem("noext"); got != "noext" {
		t.Fatalf("Stem = %q", got)
	}
}
