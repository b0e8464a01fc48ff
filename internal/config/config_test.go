package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test showroom defaults
	if cfg.Showroom.StartPage != "landing" {
		t.Errorf("expected start page 'landing', got %s", cfg.Showroom.StartPage)
	}
	if cfg.Showroom.MobileBreakpoint != 768 {
		t.Errorf("expected breakpoint 768, got %d", cfg.Showroom.MobileBreakpoint)
	}
	if cfg.Showroom.AssetsRoot != "public" {
		t.Errorf("expected assets root 'public', got %s", cfg.Showroom.AssetsRoot)
	}

	// Test input defaults
	if cfg.Input.WheelNotchDelta != 100 {
		t.Errorf("expected wheel notch delta 100, got %f", cfg.Input.WheelNotchDelta)
	}

	// Test screenshot defaults
	if cfg.Screenshots.Format != "png" {
		t.Errorf("expected screenshot format 'png', got %s", cfg.Screenshots.Format)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

showroom:
  assets_root: "/srv/showroom/public"
  start_page: "comics"
  catalog_dir: "catalogs"
  mobile_breakpoint: 600

input:
  wheel_notch_delta: 120
  tap_slop: 12

screenshots:
  dir: "shots"
  format: "webp"

logging:
  level: "debug"
  log_file: "showroom.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	// Not in the file, keeps default.
	if cfg.Graphics.MSAA != 4 {
		t.Errorf("expected msaa 4 kept from defaults, got %d", cfg.Graphics.MSAA)
	}

	if cfg.Showroom.AssetsRoot != "/srv/showroom/public" {
		t.Errorf("unexpected assets root %s", cfg.Showroom.AssetsRoot)
	}
	if cfg.Showroom.StartPage != "comics" {
		t.Errorf("expected start page 'comics', got %s", cfg.Showroom.StartPage)
	}
	if cfg.Showroom.MobileBreakpoint != 600 {
		t.Errorf("expected breakpoint 600, got %d", cfg.Showroom.MobileBreakpoint)
	}

	if cfg.Input.WheelNotchDelta != 120 {
		t.Errorf("expected wheel notch delta 120, got %f", cfg.Input.WheelNotchDelta)
	}
	if cfg.Input.TapSlop != 12 {
		t.Errorf("expected tap slop 12, got %f", cfg.Input.TapSlop)
	}

	if cfg.Screenshots.Format != "webp" {
		t.Errorf("expected format 'webp', got %s", cfg.Screenshots.Format)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "showroom.log" {
		t.Errorf("expected log file 'showroom.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"webp screenshots", func(c *Config) { c.Screenshots.Format = "webp" }, false},
		{"unknown screenshot format", func(c *Config) { c.Screenshots.Format = "gif" }, true},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, true},
		{"negative breakpoint", func(c *Config) { c.Showroom.MobileBreakpoint = -1 }, true},
		{"zero wheel delta is repaired", func(c *Config) { c.Input.WheelNotchDelta = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg.Input.WheelNotchDelta <= 0 && err == nil {
				t.Error("wheel notch delta should have been repaired")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Point the user config dir somewhere empty
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Showroom.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "page flag",
			setup: func() {
				*flagPage = "cassettes"
			},
			verify: func(cfg *Config) {
				if cfg.Showroom.StartPage != "cassettes" {
					t.Errorf("expected start page cassettes, got %s", cfg.Showroom.StartPage)
				}
			},
			teardown: func() {
				*flagPage = ""
			},
		},
		{
			name: "assets flag",
			setup: func() {
				*flagAssets = "/opt/assets"
			},
			verify: func(cfg *Config) {
				if cfg.Showroom.AssetsRoot != "/opt/assets" {
					t.Errorf("expected assets root /opt/assets, got %s", cfg.Showroom.AssetsRoot)
				}
			},
			teardown: func() {
				*flagAssets = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
showroom:
  start_page: comics
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	*flagPage = "cars"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagPage = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Showroom.StartPage != "cars" {
		t.Errorf("expected start page cars from flag, got %s", cfg.Showroom.StartPage)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("screenshots:\n  format: tiff\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unsupported screenshot format")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Showroom.StartPage = "cassettes"
	cfg.Screenshots.Format = "webp"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Showroom.StartPage != "cassettes" || loaded.Screenshots.Format != "webp" {
		t.Errorf("saved values not restored: %+v", loaded.Showroom)
	}
}
