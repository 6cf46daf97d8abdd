package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file both demos read, relative to the process working directory.
const DefaultPath = "config/demos.yaml"

// Environment variables that override the file.
const (
	EnvConfigPath = "SPACE_DEMOS_CONFIG"
	EnvAssetsDir  = "SPACE_DEMOS_ASSETS"
	EnvSeed       = "SPACE_DEMOS_SEED"
)

// Config holds every tunable of both demos. Fields missing from the YAML keep their defaults.
type Config struct {
	Window   Window   `yaml:"window"`
	Debug    Debug    `yaml:"debug"`
	Log      Log      `yaml:"log"`
	Earth    Earth    `yaml:"earth"`
	Wormhole Wormhole `yaml:"wormhole"`
}

// Window sizes the canvas. Zero width or height means the primary monitor's size.
type Window struct {
	Title      string `yaml:"title"`
	Width      int32  `yaml:"width"`
	Height     int32  `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int32  `yaml:"target_fps"`
	MSAA       bool   `yaml:"msaa"`
}

// Debug toggles overlays (off by default). Font is a family or file name looked up under
// FontDir; empty uses raylib's built-in font.
type Debug struct {
	ShowFPS      bool   `yaml:"show_fps"`
	ShowMemAlloc bool   `yaml:"show_memalloc"`
	ShowLog      bool   `yaml:"show_log"`
	Font         string `yaml:"font"`
	FontDir      string `yaml:"font_dir"`
}

// Log sets where each demo appends its log; "%s" is replaced by the demo name.
type Log struct {
	Path string `yaml:"path"`
}

// PathFor returns the log path for a demo.
func (l Log) PathFor(demo string) string {
	if l.Path == "" {
		return ""
	}
	return fmt.Sprintf(l.Path, demo)
}

// Camera is a perspective camera placement.
type Camera struct {
	FovY     float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

// Textures names the earth image files, resolved against AssetsDir.
type Textures struct {
	Diffuse    string `yaml:"diffuse"`
	Specular   string `yaml:"specular"`
	Bump       string `yaml:"bump"`
	Lights     string `yaml:"lights"`
	Clouds     string `yaml:"clouds"`
	CloudAlpha string `yaml:"cloud_alpha"`
}

// Names lists the file names in a fixed order.
func (t Textures) Names() []string {
	return []string{t.Diffuse, t.Specular, t.Bump, t.Lights, t.Clouds, t.CloudAlpha}
}

// Fetch says where fetch-textures downloads missing textures from: either BaseURL joined
// with each file name, or a zip Archive containing them.
type Fetch struct {
	BaseURL string `yaml:"base_url"`
	Archive string `yaml:"archive"`
}

// Stars configures the background star field. Seed 0 picks a time-based seed.
type Stars struct {
	Count  int     `yaml:"count"`
	Radius float32 `yaml:"radius"`
	Seed   uint64  `yaml:"seed"`
}

// Earth configures the earth scene.
type Earth struct {
	AssetsDir     string     `yaml:"assets_dir"`
	Textures      Textures   `yaml:"textures"`
	Fetch         Fetch      `yaml:"fetch"`
	Detail        int        `yaml:"detail"`
	TiltDegrees   float32    `yaml:"tilt_degrees"`
	RotationSpeed float32    `yaml:"rotation_speed"`
	CloudSpeed    float32    `yaml:"cloud_speed"`
	CloudScale    float32    `yaml:"cloud_scale"`
	CloudOpacity  float32    `yaml:"cloud_opacity"`
	BumpScale     float32    `yaml:"bump_scale"`
	LightPosition [3]float32 `yaml:"light_position"`
	Damping       float32    `yaml:"damping"`
	Camera        Camera     `yaml:"camera"`
	Stars         Stars      `yaml:"stars"`
}

// Bloom configures the wormhole's glow pass.
type Bloom struct {
	Threshold float32 `yaml:"threshold"`
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
}

// Fog is linear fog between Near and Far view distance.
type Fog struct {
	Color uint32  `yaml:"color"`
	Near  float32 `yaml:"near"`
	Far   float32 `yaml:"far"`
}

// Wormhole configures the tube flythrough.
type Wormhole struct {
	TubularSegments int           `yaml:"tubular_segments"`
	RadialSegments  int           `yaml:"radial_segments"`
	Radius          float32       `yaml:"radius"`
	LinePoints      int           `yaml:"line_points"`
	LineColor       uint32        `yaml:"line_color"`
	LoopTime        time.Duration `yaml:"loop_time"`
	TimeScale       float64       `yaml:"time_scale"`
	LookAhead       float64       `yaml:"look_ahead"`
	ColorInterval   time.Duration `yaml:"color_interval"`
	// ColorStride is the step between color writes. At 4 every fourth channel is never
	// written; 3 fills every channel.
	ColorStride int    `yaml:"color_stride"`
	ColorSeed   uint64 `yaml:"color_seed"`
	Fog         Fog    `yaml:"fog"`
	Bloom       Bloom  `yaml:"bloom"`
	Camera      Camera `yaml:"camera"`
}

// Default returns the configuration the demos were designed with.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "space demos",
			TargetFPS: 60,
			MSAA:      true,
		},
		Debug: Debug{FontDir: "assets/fonts"},
		Log:   Log{Path: "logs/%s.txt"},
		Earth: Earth{
			AssetsDir: "assets/textures",
			Textures: Textures{
				Diffuse:    "00_earthmap1k.jpg",
				Specular:   "02_earthspec1k.jpg",
				Bump:       "01_earthbump1k.jpg",
				Lights:     "03_earthlights1k.jpg",
				Clouds:     "04_earthcloudmap.jpg",
				CloudAlpha: "05_earthcloudmaptrans.jpg",
			},
			Detail:        16,
			TiltDegrees:   23.4,
			RotationSpeed: 0.001,
			CloudSpeed:    0.0005,
			CloudScale:    1.003,
			CloudOpacity:  0.8,
			BumpScale:     0.04,
			LightPosition: [3]float32{-2, 0.5, 1.5},
			Damping:       0.05,
			Camera:        Camera{FovY: 75, Near: 0.1, Far: 1000, Position: [3]float32{0, 0, 5}},
			Stars:         Stars{Count: 300, Radius: 1000},
		},
		Wormhole: Wormhole{
			TubularSegments: 222,
			RadialSegments:  16,
			Radius:          0.65,
			LinePoints:      100,
			LineColor:       0x123123,
			LoopTime:        20 * time.Second,
			TimeScale:       0.5,
			LookAhead:       0.01,
			ColorInterval:   time.Second,
			ColorStride:     4,
			Fog:             Fog{Color: 0x000000, Near: 1, Far: 4},
			Bloom:           Bloom{Threshold: 0.005, Strength: 5.5, Radius: 0},
			Camera:          Camera{FovY: 75, Near: 0.1, Far: 1000, Position: [3]float32{0, 0, 5}},
		},
	}
}

// Load reads the YAML file at path on top of Default(). A missing file is not an error. An
// invalid file returns Default() together with the parse error so the caller can log it
// and carry on.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the scenes cannot be built with.
func (c Config) Validate() error {
	switch {
	case c.Earth.Detail < 0:
		return errors.New("earth.detail must be >= 0")
	case c.Earth.Stars.Count < 0:
		return errors.New("earth.stars.count must be >= 0")
	case c.Earth.Damping < 0 || c.Earth.Damping > 1:
		return errors.New("earth.damping must be in [0,1]")
	case c.Wormhole.TubularSegments < 1 || c.Wormhole.RadialSegments < 3:
		return errors.New("wormhole tube needs >= 1 tubular and >= 3 radial segments")
	case c.Wormhole.LoopTime <= 0:
		return errors.New("wormhole.loop_time must be positive")
	case c.Wormhole.ColorInterval <= 0:
		return errors.New("wormhole.color_interval must be positive")
	case c.Wormhole.ColorStride < 3:
		return errors.New("wormhole.color_stride must be >= 3")
	case c.Wormhole.LinePoints < 1:
		return errors.New("wormhole.line_points must be >= 1")
	case c.Wormhole.LookAhead < 0 || c.Wormhole.LookAhead >= 1:
		return errors.New("wormhole.look_ahead must be in [0,1)")
	}
	return nil
}

// ApplyEnv overrides fields from environment variables looked up with lookup (os.LookupEnv
// in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if dir, ok := lookup(EnvAssetsDir); ok && dir != "" {
		c.Earth.AssetsDir = dir
	}
	if s, ok := lookup(EnvSeed); ok && s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Earth.Stars.Seed = seed
		c.Wormhole.ColorSeed = seed
	}
	return nil
}

// Path returns the config path from the environment, or fallback.
func Path(lookup func(string) (string, bool), fallback string) string {
	if p, ok := lookup(EnvConfigPath); ok && p != "" {
		return filepath.Clean(p)
	}
	return fallback
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
