package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/leighmacdonald/steamid/v4/steamid"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
)

const (
	ConfigDirName      = "dota-tui"
	DefaultConfigName  = "dota-tui"
	DefaultDBName      = "dota-tui.db"
	DefaultLogName     = "dota-tui.log"
	CacheDirName       = "cache"
	EnvPrefix          = "dotatui"
	DefaultHTTPTimeout = 8 * time.Second
)

// DefaultAssetHosts are the Steam CDN mirrors tried in order.
var DefaultAssetHosts = []string{ //nolint:gochecknoglobals
	"https://cdn.steamstatic.com/",
	"https://cdn.cloudflare.steamstatic.com/",
	"https://cdn.akamai.steamstatic.com/",
	"https://steamcdn-a.akamaihd.net/",
}

type Config struct {
	// EndpointURL is the websocket address of the GSI server, as entered by the user. It is
	// normalized with NormalizeEndpoint before dialing.
	EndpointURL string `mapstructure:"endpoint_url"`
	// FPS bounds how often cooldown overlays are redrawn while any cooldown is active.
	FPS              int `mapstructure:"fps"`
	ReconnectSeconds int `mapstructure:"reconnect_seconds"`
	// AssetHosts are the CDN base URLs used to resolve hero, item and ability icons.
	AssetHosts         []string    `mapstructure:"asset_hosts"`
	AssetRetrySeconds  int         `mapstructure:"asset_retry_seconds"`
	HTTPTimeoutSeconds int         `mapstructure:"http_timeout_seconds"`
	RecordEnabled      bool        `mapstructure:"record_enabled"`
	WakeLock           bool        `mapstructure:"wake_lock"`
	Links              []UserLink  `mapstructure:"links"`
	Diagnostics        Diagnostics `mapstructure:"diagnostics"`
}

// Diagnostics enables debug logging for named areas such as "conn" or "icons". When Filter is set,
// only messages containing it are logged.
type Diagnostics struct {
	Areas  []string `mapstructure:"areas"`
	Filter string   `mapstructure:"filter"`
}

func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return DefaultHTTPTimeout
	}

	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c Config) AssetRetryInterval() time.Duration {
	if c.AssetRetrySeconds <= 0 {
		return time.Minute
	}

	return time.Duration(c.AssetRetrySeconds) * time.Second
}

func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 10
	}

	return time.Second / time.Duration(c.FPS)
}

type SIDFormats string

const (
	Steam64   SIDFormats = "steam64"
	Steam2    SIDFormats = "steam"
	Steam3    SIDFormats = "steam3"
	AccountID SIDFormats = "account"
)

// steam64 of account id 0 in the public universe.
const accountIDBase = 76561197960265728

type UserLink struct {
	URL    string     `mapstructure:"url"`
	Name   string     `mapstructure:"name"`
	Format SIDFormats `mapstructure:"format"`
}

func (u UserLink) Generate(steamID steamid.SteamID) string {
	switch u.Format {
	case Steam2:
		return fmt.Sprintf(u.URL, steamID.Steam(false))
	case Steam3:
		return fmt.Sprintf(u.URL, steamID.Steam3())
	case AccountID:
		return fmt.Sprintf(u.URL, strconv.FormatInt(steamID.Int64()-accountIDBase, 10))
	case Steam64:
		fallthrough
	default:
		return fmt.Sprintf(u.URL, steamID.String())
	}
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

func PathCache(name string) string {
	cacheDir, found := os.LookupEnv("CACHE_DIR")
	if found && cacheDir != "" {
		return cacheDir
	}

	return path.Join(xdg.CacheHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(path.Join(xdg.ConfigHome, ConfigDirName, logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
