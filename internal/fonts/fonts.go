// Package fonts finds font files on disk for the debug overlay.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// ScanDir returns the paths of all font files under dir, relative to dir and using forward
// slashes. A missing dir yields no files and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases and drops spaces, dashes and underscores so "Google Sans" matches
// "Google_Sans/GoogleSans-Regular.ttf".
func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Find returns the full path of the first font under dirs whose relative path contains
// search (compared loosely). A path that exists as given wins outright. Among several
// matches a "Regular" face is preferred.
func Find(search string, dirs ...string) (string, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", os.ErrNotExist
	}
	if _, err := os.Stat(search); err == nil && isFont(search) {
		return search, nil
	}
	want := normalize(strings.TrimSuffix(search, filepath.Ext(search)))
	var matches []string
	for _, dir := range dirs {
		list, err := ScanDir(dir)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalize(rel), want) {
				matches = append(matches, filepath.Join(dir, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}
