// Package download fetches remote files (texture images and archives) to disk.
package download

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "space-demos/1.0"

// DefaultClient is used when Fetch is given a nil client.
var DefaultClient = &http.Client{Timeout: 60 * time.Second}

// Fetch downloads rawURL into destDir and returns the saved path. name, when set, is the file
// name to save under; otherwise it comes from Content-Disposition or the URL, with an
// extension from Content-Type or the URL. destDir is created if needed. A failed transfer
// leaves no partial file behind.
func Fetch(ctx context.Context, client *http.Client, rawURL, destDir, name string) (savedPath string, err error) {
	if client == nil {
		client = DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", rawURL, resp.StatusCode)
	}

	if name == "" {
		name = responseName(rawURL, resp.Header)
	}
	name = sanitizeFilename(name)
	savedPath = filepath.Join(destDir, name)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	tmp, err := os.CreateTemp(destDir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp.Name(), savedPath); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

// mediaExts maps the content types textures and texture packs are served with.
var mediaExts = map[string]string{
	"image/jpeg":                   ".jpg",
	"image/jpg":                    ".jpg",
	"image/png":                    ".png",
	"image/webp":                   ".webp",
	"image/bmp":                    ".bmp",
	"application/zip":              ".zip",
	"application/x-zip-compressed": ".zip",
}

var urlExts = map[string]bool{".zip": true, ".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".bmp": true}

// responseName derives a file name from Content-Disposition or the URL path. Unless the
// disposition name already has a known extension, one is appended from Content-Type, the
// URL, or ".bin".
func responseName(rawURL string, h http.Header) string {
	var urlPath string
	if u, err := url.Parse(rawURL); err == nil {
		urlPath = u.Path
	}

	ext := ""
	if mt, _, err := mime.ParseMediaType(h.Get("Content-Type")); err == nil {
		ext = mediaExts[mt]
	}
	if ext == "" {
		if e := strings.ToLower(path.Ext(urlPath)); urlExts[e] {
			ext = e
		}
	}
	if ext == "" {
		ext = ".bin"
	}

	name := ""
	if _, params, err := mime.ParseMediaType(h.Get("Content-Disposition")); err == nil {
		name = params["filename"]
		if urlExts[strings.ToLower(path.Ext(name))] {
			return name
		}
	}
	if name == "" {
		if base := path.Base(urlPath); base != "." && base != "/" {
			name = strings.TrimSuffix(base, path.Ext(base))
		}
	}
	if name == "" {
		name = "download"
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" {
		return "download"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}

// JoinURL appends name to base with exactly one slash between them.
func JoinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(name, "/")
}
