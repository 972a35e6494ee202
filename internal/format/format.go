// Package format maps requested output format names to concrete encoder
// parameters and validates the requested quality against each codec's
// accepted bitrate set.
package format

import (
	"fmt"
	"sort"
	"strings"

	"aurify/internal/services"
)

// DefaultName is the format used when the caller does not request one.
const DefaultName = "flac"

// DefaultQuality is the bitrate used when the caller does not request one.
const DefaultQuality = "256k"

// Spec describes the encoder parameters for one output format.
type Spec struct {
	Name           string
	Extension      string
	Codec          string
	QualityApplies bool
	DefaultQuality string
	Qualities      []string
}

var standardQualities = []string{"128k", "192k", "256k", "320k"}

var registry = map[string]Spec{
	"flac": {Name: "flac", Extension: "flac", Codec: "flac"},
	"wav":  {Name: "wav", Extension: "wav", Codec: "pcm_s16le"},
	"mp3":  {Name: "mp3", Extension: "mp3", Codec: "libmp3lame", QualityApplies: true, DefaultQuality: DefaultQuality, Qualities: standardQualities},
	"aac":  {Name: "aac", Extension: "aac", Codec: "aac", QualityApplies: true, DefaultQuality: DefaultQuality, Qualities: standardQualities},
	"ogg":  {Name: "ogg", Extension: "ogg", Codec: "libvorbis", QualityApplies: true, DefaultQuality: DefaultQuality, Qualities: standardQualities},
	"m4a":  {Name: "m4a", Extension: "m4a", Codec: "aac", QualityApplies: true, DefaultQuality: DefaultQuality, Qualities: standardQualities},
	"opus": {Name: "opus", Extension: "opus", Codec: "libopus", QualityApplies: true, DefaultQuality: "128k", Qualities: []string{"64k", "96k", "128k", "192k"}},
}

// Canonical returns the intermediate spec every input is normalized to
// before enhancement: 16-bit PCM at 44.1kHz in a WAV container.
func Canonical() Spec {
	return registry["wav"]
}

// Names returns the supported format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up the Spec for a requested format name. An empty name
// resolves to the default format; an unrecognized name is a configuration
// error, never a silent fallback.
func Resolve(name string) (Spec, error) {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	if cleaned == "" {
		cleaned = DefaultName
	}
	spec, ok := registry[cleaned]
	if !ok {
		return Spec{}, services.Wrap(services.ErrConfiguration, "", "resolve format",
			fmt.Sprintf("unknown format %q (supported: %s)", name, strings.Join(Names(), ", ")), nil)
	}
	return spec, nil
}

// ResolveQuality validates the requested quality for the spec and returns the
// value to hand to the encoder. Lossless formats accept and ignore any
// quality. An out-of-range quality for a lossy codec is a validation error
// surfaced before any transcoding begins.
func (s Spec) ResolveQuality(quality string) (string, error) {
	if !s.QualityApplies {
		return "", nil
	}
	cleaned := strings.ToLower(strings.TrimSpace(quality))
	if cleaned == "" {
		return s.DefaultQuality, nil
	}
	for _, allowed := range s.Qualities {
		if cleaned == allowed {
			return cleaned, nil
		}
	}
	return "", services.Wrap(services.ErrValidation, "", "resolve quality",
		fmt.Sprintf("quality %q not valid for %s (accepted: %s)", quality, s.Name, strings.Join(s.Qualities, ", ")), nil)
}
