package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"space-demos/internal/archive"
	"space-demos/internal/download"
	"space-demos/internal/logger"
)

// FetchSource says where missing files come from. Archive wins when both are set.
type FetchSource struct {
	BaseURL string
	Archive string
}

// Missing returns the names that do not exist in dir.
func Missing(dir string, names []string) []string {
	var out []string
	for _, n := range names {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			out = append(out, n)
		}
	}
	return out
}

// Fetch downloads the names missing from dir and returns the paths it wrote. Names already
// present are left alone.
func Fetch(ctx context.Context, client *http.Client, dir string, names []string, src FetchSource, log *logger.Logger) ([]string, error) {
	missing := Missing(dir, names)
	if len(missing) == 0 {
		return nil, nil
	}
	switch {
	case src.Archive != "":
		return fetchArchive(ctx, client, dir, missing, src.Archive, log)
	case src.BaseURL != "":
		return fetchEach(ctx, client, dir, missing, src.BaseURL, log)
	}
	return nil, fmt.Errorf("%d textures missing from %s and no fetch source configured", len(missing), dir)
}

func fetchEach(ctx context.Context, client *http.Client, dir string, names []string, base string, log *logger.Logger) ([]string, error) {
	var written []string
	var errs []error
	for _, n := range names {
		p, err := download.Fetch(ctx, client, download.JoinURL(base, n), dir, n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if log != nil {
			log.Logf("fetched %s", p)
		}
		written = append(written, p)
	}
	return written, errors.Join(errs...)
}

func fetchArchive(ctx context.Context, client *http.Client, dir string, names []string, url string, log *logger.Logger) ([]string, error) {
	tmp, err := os.MkdirTemp("", "space-demos-fetch")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	zipPath, err := download.Fetch(ctx, client, url, tmp, "textures.zip")
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	written, err := archive.Extract(zipPath, dir, want)
	if err != nil {
		return written, err
	}
	if log != nil {
		log.Logf("extracted %d textures from %s", len(written), url)
	}
	if still := Missing(dir, names); len(still) > 0 {
		return written, fmt.Errorf("archive %s lacks %v", url, still)
	}
	return written, nil
}
