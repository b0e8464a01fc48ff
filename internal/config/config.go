// Package config handles showroom configuration loading and management.
package config

// Config holds all showroom settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Logging     LoggingConfig    `yaml:"logging"`
	Showroom    ShowroomConfig   `yaml:"showroom"`
	Input       InputConfig      `yaml:"input"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	MSAA       int  `yaml:"msaa"` // Multisample count, 0 disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ShowroomConfig holds page and asset settings.
type ShowroomConfig struct {
	// AssetsRoot plays the role of the web public directory:
	// "/models/x.gltf" resolves to AssetsRoot/models/x.gltf.
	AssetsRoot string `yaml:"assets_root"`
	StartPage  string `yaml:"start_page"`
	// CatalogDir optionally overrides the embedded page catalogs.
	CatalogDir       string `yaml:"catalog_dir"`
	MobileBreakpoint int    `yaml:"mobile_breakpoint"`
	ShowFPS          bool   `yaml:"show_fps"`
}

// InputConfig holds input translation settings.
type InputConfig struct {
	// WheelNotchDelta is the browser-equivalent deltaY for one wheel notch.
	WheelNotchDelta float32 `yaml:"wheel_notch_delta"`
	// TapSlop is how far (pixels) a finger may travel and still count as a tap.
	TapSlop float32 `yaml:"tap_slop"`
}

// ScreenshotConfig holds screenshot capture settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or webp
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			MSAA:       4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Showroom: ShowroomConfig{
			AssetsRoot:       "public",
			StartPage:        "landing",
			CatalogDir:       "",
			MobileBreakpoint: 768,
			ShowFPS:          false,
		},
		Input: InputConfig{
			WheelNotchDelta: 100,
			TapSlop:         10,
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
	}
}
