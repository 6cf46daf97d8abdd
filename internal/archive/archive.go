// Package archive unpacks texture packs.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Extract copies files out of the zip at zipPath into destDir. With a nil want every file is
// extracted, keeping the archive's directory structure. Otherwise only files whose base name
// is in want are extracted, flattened into destDir. Entries that would land outside destDir
// are skipped. It returns the written paths.
func Extract(zipPath, destDir string, want map[string]bool) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rel := f.Name
		if want != nil {
			base := path.Base(f.Name)
			if !want[base] {
				continue
			}
			rel = base
		}
		dest := filepath.Clean(filepath.Join(destDir, filepath.FromSlash(rel)))
		absDest, err := filepath.Abs(dest)
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		if !strings.HasPrefix(absDest, absDir+string(os.PathSeparator)) {
			continue // skip path escape
		}
		if err := extractFile(f, dest); err != nil {
			return nil, fmt.Errorf("unzip %s: %w", f.Name, err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
