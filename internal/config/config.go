package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	appDirName            = "maru"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	Delete     string `toml:"delete"`
	Edit       string `toml:"edit"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
	Search     string `toml:"search"`
	Filter     string `toml:"filter"`
	Theme      string `toml:"theme"`
	Grab       string `toml:"grab"`
	SwitchPane string `toml:"switch_pane"`
}

type Config struct {
	DataDir               string `toml:"data_dir"`
	Backend               string `toml:"backend"`
	DefaultFilter         string `toml:"default_filter"`
	ReminderIntervalHours int    `toml:"reminder_interval_hours"`
	Keys                  Keymap `toml:"keys"`
}

// ResolveConfigPath prefers the user config dir, falling back to the
// working directory when it cannot be determined.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendJSON
	}
	if cfg.ReminderIntervalHours <= 0 {
		cfg.ReminderIntervalHours = 24
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appDirName)
}

func defaultConfig() Config {
	return Config{
		DataDir:               defaultDataDir(),
		Backend:               BackendJSON,
		DefaultFilter:         "all",
		ReminderIntervalHours: 24,
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			Up:         "k",
			Down:       "j",
			Toggle:     " ",
			Delete:     "d",
			Edit:       "e",
			Confirm:    "enter",
			Cancel:     "esc",
			Search:     "/",
			Filter:     "f",
			Theme:      "t",
			Grab:       "g",
			SwitchPane: "tab",
		},
	}
}
