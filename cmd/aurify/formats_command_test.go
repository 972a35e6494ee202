package main

import "testing"

func TestFormatsListsRegistry(t *testing.T) {
	out, _, err := runCLI(t, []string{"formats"}, "")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}

	for _, name := range []string{"flac", "wav", "mp3", "aac", "ogg", "m4a", "opus"} {
		requireContains(t, out, name)
	}
	requireContains(t, out, "libmp3lame")
	requireContains(t, out, "Default format: flac")
}

func TestFormatsWorksWithoutConfig(t *testing.T) {
	// formats must not require a readable configuration file.
	_, _, err := runCLI(t, []string{"formats"}, "/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("formats with bogus config path: %v", err)
	}
}
