// Package data bundles the small default language profile set used when
// no external profile directory is configured: enough languages to
// exercise every folding path the core normalizer implements (plain
// Latin, accented Latin, Hiragana/Katakana, and CJK block collapse).
package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
)

//go:embed profiles/*.json
var profileFiles embed.FS

// DefaultProfiles returns the embedded default profile set, in
// deterministic filename order. It panics if the embedded data fails to
// parse, which would indicate a build-time packaging bug rather than a
// runtime condition callers should handle.
func DefaultProfiles() []langdetect.LanguageProfile {
	entries, err := profileFiles.ReadDir("profiles")
	if err != nil {
		panic(fmt.Sprintf("data: reading embedded profiles: %v", err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	profiles := make([]langdetect.LanguageProfile, 0, len(names))
	for _, name := range names {
		raw, err := profileFiles.ReadFile("profiles/" + name)
		if err != nil {
			panic(fmt.Sprintf("data: reading embedded profile %s: %v", name, err))
		}
		var p langdetect.LanguageProfile
		if err := json.Unmarshal(raw, &p); err != nil {
			panic(fmt.Sprintf("data: parsing embedded profile %s: %v", name, err))
		}
		profiles = append(profiles, p)
	}

	return profiles
}
