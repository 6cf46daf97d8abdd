// Command fetch-textures downloads the earth textures that are missing from the assets
// directory, either one by one from a base URL or from a zip archive.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"space-demos/internal/app"
	"space-demos/internal/assets"
	"space-demos/internal/download"
)

func main() {
	var baseURL, archiveURL string
	opts, err := app.ParseFlags("fetch-textures", os.Args[1:], os.LookupEnv, os.Stderr, func(fs *flag.FlagSet) {
		fs.StringVar(&baseURL, "url", "", "base URL the texture names are appended to (overrides earth.fetch.base_url)")
		fs.StringVar(&archiveURL, "archive", "", "zip archive holding the textures (overrides earth.fetch.archive)")
	})
	if err != nil {
		os.Exit(2)
	}
	cfg, log, err := app.Start("fetch-textures", opts)
	if err != nil {
		app.Fatal(log, err)
	}

	src := assets.FetchSource{BaseURL: cfg.Earth.Fetch.BaseURL, Archive: cfg.Earth.Fetch.Archive}
	if baseURL != "" {
		src.BaseURL = baseURL
	}
	if archiveURL != "" {
		src.Archive = archiveURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dir := cfg.Earth.AssetsDir
	written, err := assets.Fetch(ctx, download.DefaultClient, dir, cfg.Earth.Textures.Names(), src, log)
	for _, p := range written {
		fmt.Println(p)
	}
	if err != nil {
		app.Fatal(log, err)
	}
	if len(written) == 0 {
		fmt.Printf("all textures present in %s\n", dir)
	}
}
