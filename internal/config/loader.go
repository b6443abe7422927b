package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Writer persists a config. The ui only needs this half of the Loader.
type Writer interface {
	Write(config Config) error
	Path() string
}

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
	dir     string
}

// NewLoader searches dir for the config file, defaulting to the XDG config dir when empty.
func NewLoader(changes chan<- Config, dir string) *Loader {
	if dir == "" {
		dir = filepath.Dir(Path(DefaultConfigName))
	}

	loader := Loader{changes: changes, Viper: viper.New(), dir: dir}
	loader.SetDefault("endpoint_url", DefaultEndpoint)
	loader.SetDefault("fps", 10)
	loader.SetDefault("reconnect_seconds", 3)
	loader.SetDefault("asset_hosts", DefaultAssetHosts)
	loader.SetDefault("asset_retry_seconds", 60)
	loader.SetDefault("http_timeout_seconds", int(DefaultHTTPTimeout.Seconds()))
	loader.SetDefault("record_enabled", false)
	loader.SetDefault("wake_lock", true)
	loader.SetDefault("links", []map[string]string{
		{
			"url":    "https://steamcommunity.com/profiles/%s",
			"name":   "Steam",
			"format": string(Steam64),
		},
		{
			"url":    "https://www.dotabuff.com/players/%s",
			"name":   "Dotabuff",
			"format": string(AccountID),
		},
		{
			"url":    "https://www.opendota.com/players/%s",
			"name":   "OpenDota",
			"format": string(AccountID),
		},
	})
	loader.SetDefault("diagnostics.areas", []string{})
	loader.SetDefault("diagnostics.filter", "")
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)
	loader.AddConfigPath(dir)
	loader.AddConfigPath(".")
	loader.AutomaticEnv()

	return &loader
}

func (cl *Loader) Path() string {
	if used := cl.ConfigFileUsed(); used != "" {
		return used
	}

	return filepath.Join(cl.dir, DefaultConfigName+".yaml")
}

// Watch starts reloading the config when the file changes on disk.
func (cl *Loader) Watch() {
	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Rename) {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	if cl.changes != nil {
		cl.changes <- config
	}
}

func (cl *Loader) Write(config Config) error {
	if config.EndpointURL != "" {
		if err := ValidateEndpoint(config.EndpointURL); err != nil {
			return errors.Join(err, errConfigWrite)
		}
	}

	cl.Set("endpoint_url", config.EndpointURL)
	cl.Set("fps", config.FPS)
	cl.Set("reconnect_seconds", config.ReconnectSeconds)
	cl.Set("asset_hosts", config.AssetHosts)
	cl.Set("asset_retry_seconds", config.AssetRetrySeconds)
	cl.Set("http_timeout_seconds", config.HTTPTimeoutSeconds)
	cl.Set("record_enabled", config.RecordEnabled)
	cl.Set("wake_lock", config.WakeLock)
	cl.Set("links", config.Links)
	cl.Set("diagnostics.areas", config.Diagnostics.Areas)
	cl.Set("diagnostics.filter", config.Diagnostics.Filter)

	if err := os.MkdirAll(cl.dir, 0o750); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	if err := cl.WriteConfigAs(cl.Path()); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

// Read loads the config file. A missing file is not an error, the defaults are used
// until the first Write.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if config.EndpointURL == "" {
		config.EndpointURL = DefaultEndpoint
	}

	if len(config.AssetHosts) == 0 {
		config.AssetHosts = DefaultAssetHosts
	}

	return config, nil
}
