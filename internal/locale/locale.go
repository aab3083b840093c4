// Package locale resolves which locales a build targets and loads their
// string tables.
//
// The fallback locale's strings live in the target repo itself; every other
// locale's strings are translations kept under the babel sibling repo. The
// fallback locale is always part of a build, and lookups fall back to it
// key by key when a translation is incomplete.
package locale

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Locale every build includes and falls back to.
const Fallback = "en"

var ErrStrings = errors.New("string resolution failed")

// Key-to-text mapping for one locale.
type StringTable map[string]string

// Locale-to-table mapping for one build.
type Tables map[string]StringTable

// On-disk string entry. Translation files map each key to an object so
// history metadata can ride along; only the value is used here.
type entry struct {
	Value string `json:"value"`
}

// Resolves the locale set for a build.
//
// The selector is either "*" (the fallback locale plus every locale with a
// translation file for the target) or a comma-separated list of codes. The
// fallback locale is always included. The result is sorted with the fallback
// locale first.
func Resolve(root, target, selector string) ([]string, error) {
	set := map[string]bool{Fallback: true}

	if selector == "*" {
		declared, err := declaredLocales(root, target)
		if err != nil {
			return nil, err
		}
		for _, code := range declared {
			set[code] = true
		}
	} else {
		for _, code := range strings.Split(selector, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			set[code] = true
		}
	}

	locales := make([]string, 0, len(set))
	for code := range set {
		if code != Fallback {
			locales = append(locales, code)
		}
	}
	sort.Strings(locales)
	return append([]string{Fallback}, locales...), nil
}

// Loads the string table for each locale.
//
// The fallback locale reads from the target repo; any other locale reads its
// translation file from the babel tree. A missing translation file for an
// explicitly requested locale is a resolution error.
func Load(root, target string, locales []string) (Tables, error) {
	tables := make(Tables, len(locales))
	for _, code := range locales {
		table, err := loadTable(stringFile(root, target, code))
		if err != nil {
			return nil, fmt.Errorf("%w: locale %q: %v", ErrStrings, code, err)
		}
		tables[code] = table
	}
	return tables, nil
}

// Looks up a key in the given locale, falling back to the fallback locale.
func (t Tables) Lookup(code, key string) (string, bool) {
	if value, ok := t[code][key]; ok {
		return value, true
	}
	value, ok := t[Fallback][key]
	return value, ok
}

// Returns the locales that have a translation file for the target.
func declaredLocales(root, target string) ([]string, error) {
	pattern := filepath.Join(root, "babel", target, target+"-strings_*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStrings, err)
	}

	prefix := target + "-strings_"
	var locales []string
	for _, match := range matches {
		name := strings.TrimSuffix(filepath.Base(match), ".json")
		locales = append(locales, strings.TrimPrefix(name, prefix))
	}
	return locales, nil
}

// Path to the string file for one locale.
func stringFile(root, target, code string) string {
	name := fmt.Sprintf("%s-strings_%s.json", target, code)
	if code == Fallback {
		return filepath.Join(root, target, name)
	}
	return filepath.Join(root, "babel", target, name)
}

// Reads one string file into a flat key-to-text table.
func loadTable(path string) (StringTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	table := make(StringTable, len(entries))
	for key, e := range entries {
		table[key] = e.Value
	}
	return table, nil
}
