// Package app holds the startup steps every demo binary shares: .env, config, log file.
package app

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"space-demos/internal/config"
	"space-demos/internal/env"
	"space-demos/internal/logger"
)

// Options are the command-line flags common to the demos.
type Options struct {
	ConfigPath string
	EnvFile    string
}

// ParseFlags reads the common flags from args (without the program name). The config path
// defaults to $SPACE_DEMOS_CONFIG, then config.DefaultPath. extra registers a binary's own
// flags on the same set.
func ParseFlags(name string, args []string, lookup func(string) (string, bool), stderr io.Writer, extra ...func(*flag.FlagSet)) (Options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o Options
	fs.StringVar(&o.ConfigPath, "config", "", "YAML config file")
	fs.StringVar(&o.EnvFile, "env", ".env", "dotenv file loaded before the config")
	for _, register := range extra {
		register(fs)
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.ConfigPath == "" {
		o.ConfigPath = config.Path(lookup, config.DefaultPath)
	}
	return o, nil
}

// Start loads the dotenv file, the config and the environment overrides, and opens the
// demo's log. Config problems are logged and the defaults are used; only a bad dotenv file
// or environment override is fatal.
func Start(demo string, o Options) (config.Config, *logger.Logger, error) {
	if err := env.Load(o.EnvFile); err != nil {
		return config.Config{}, nil, err
	}
	cfg, cfgErr := config.Load(o.ConfigPath)
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, nil, err
	}
	log := logger.New(cfg.Log.PathFor(demo))
	log.Logf("%s starting, config %s", demo, o.ConfigPath)
	if cfgErr != nil {
		log.Logf("config: %v, using defaults", cfgErr)
	}
	return cfg, log, nil
}

// Seed returns seed, or a time-based one when seed is 0.
func Seed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// Fatal prints err and exits with status 1.
func Fatal(log *logger.Logger, err error) {
	if log != nil {
		log.Logf("fatal: %v", err)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
