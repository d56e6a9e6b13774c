// Package profiles resolves where language profile data lives on disk and
// loads it into the shapes the langdetect core consumes, mirroring how the
// teacher package resolves model file locations.
package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
)

// DirEnvVar is the environment variable checked by Dir when no explicit
// override is given.
const DirEnvVar = "LANGDETECT_PROFILES_DIR"

// defaultRelDir is the default profile directory relative to the module
// root, used when an override directory cannot be found.
const defaultRelDir = "data/profiles"

// Dir resolves the profile directory to load from, in priority order:
// an explicit override, the LANGDETECT_PROFILES_DIR environment variable,
// then a data/profiles directory discovered by walking up from the
// current working directory to the nearest go.mod.
func Dir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if envDir := os.Getenv(DirEnvVar); envDir != "" {
		return envDir, nil
	}

	root, err := findModuleRoot()
	if err == nil {
		candidate := filepath.Join(root, defaultRelDir)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
			return candidate, nil
		}
	}

	if info, statErr := os.Stat(defaultRelDir); statErr == nil && info.IsDir() {
		return defaultRelDir, nil
	}

	return "", fmt.Errorf("profiles: no profile directory found (set %s or pass an explicit path)", DirEnvVar)
}

// findModuleRoot walks upward from the current working directory looking
// for a go.mod file.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("profiles: go.mod not found above %s", dir)
		}
		dir = parent
	}
}

// LoadDir reads every *.json file directly under dir, unmarshals each into
// a langdetect.LanguageProfile, and returns them sorted by filename so
// load order (and therefore each language's column position in the
// resulting ProbabilityIndex) is deterministic across runs.
func LoadDir(dir string) ([]langdetect.LanguageProfile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("profiles: reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	profiles := make([]langdetect.LanguageProfile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("profiles: reading %s: %w", path, err)
		}
		var p langdetect.LanguageProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("profiles: parsing %s: %w", path, err)
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}
