// Package envfile resolves named isolated environments to variable overlays.
//
// An environment is a dotenv file named <name>.env inside a configurable
// directory. Activation never mutates the process environment: callers merge
// the overlay onto os.Environ() and hand the result to external commands.
package envfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Extension is appended to an environment name to form its file name.
const Extension = ".env"

// errEnvironmentNameRequired is returned when an empty environment name is resolved.
var errEnvironmentNameRequired = errors.New("environment name must be provided")

// Path returns the dotenv file path for the named environment.
func Path(dir, name string) string {
	return filepath.Join(dir, name+Extension)
}

// Load reads the dotenv file for the named environment and returns its variables.
func Load(dir, name string) (map[string]string, error) {
	if name == "" {
		return nil, errEnvironmentNameRequired
	}

	values, err := godotenv.Read(filepath.Clean(Path(dir, name)))
	if err != nil {
		return nil, fmt.Errorf("read environment %q: %w", name, err)
	}

	return values, nil
}

// Merge overlays values onto a base environment in "KEY=VALUE" form.
// Existing keys are replaced in place; new keys are appended in sorted order
// so the result is deterministic.
func Merge(base []string, overlay map[string]string) []string {
	merged := make([]string, 0, len(base)+len(overlay))
	replaced := make(map[string]struct{}, len(overlay))

	for _, kv := range base {
		key, _, ok := strings.Cut(kv, "=")
		if ok {
			if value, exists := overlay[key]; exists {
				merged = append(merged, key+"="+value)
				replaced[key] = struct{}{}

				continue
			}
		}

		merged = append(merged, kv)
	}

	appended := make([]string, 0, len(overlay))

	for key, value := range overlay {
		if _, exists := replaced[key]; exists {
			continue
		}

		appended = append(appended, key+"="+value)
	}

	sort.Strings(appended)

	return append(merged, appended...)
}
