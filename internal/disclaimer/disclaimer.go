// Package disclaimer loads localized disclaimer texts that get appended to
// prose answers.
package disclaimer

import (
	"os"
	"path/filepath"
	"strings"
)

// Store reads per-language disclaimer files named <lang>.txt from a single
// directory.
type Store struct {
	dir      string
	fallback string
}

// NewStore creates a store rooted at dir. fallback is the language tried
// when the requested one has no file.
func NewStore(dir, fallback string) *Store {
	return &Store{dir: dir, fallback: fallback}
}

// Text returns the disclaimer for lang, falling back to the store's default
// language and finally to the empty string. A missing directory or file is
// not an error; it just means there is nothing to append.
func (s *Store) Text(lang string) string {
	if s.dir == "" {
		return ""
	}
	for _, l := range []string{lang, s.fallback} {
		if l == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, l+".txt"))
		if err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}
