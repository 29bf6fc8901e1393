package configuration

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"channel-insights/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Database    Database    `json:"database"`
	App         App         `json:"app"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
	YouTube     YouTube     `json:"youtube"`
	Analysis    Analysis    `json:"analysis"`
	Favorites   Favorites   `json:"favorites"`
}

type App struct {
	Port      int    `json:"port"`
	AssetDir  string `json:"assetDir"`
	DistDir   string `json:"distDir"`
	ExportDir string `json:"exportDir"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

type Logger struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

type YouTube struct {
	APIKey   string `json:"apiKey"`
	Endpoint string `json:"endpoint"`
}

// Analysis controls how analysis rows and grid labels are rendered
type Analysis struct {
	Locale        string `json:"locale"`
	Timezone      string `json:"timezone"`
	TimezoneLabel string `json:"timezoneLabel"`
}

// Favorites selects where the favorite channel list is persisted
type Favorites struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
	Key     string `json:"key"`
}

// Favorites backends
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

const (
	DefaultPort          = 3000
	DefaultLocale        = "uk-UA"
	DefaultTimezone      = "Europe/Nicosia"
	DefaultTimezoneLabel = "Cyprus"
	DefaultFavoritesKey  = "ytChannelFavorites"
)

var C Config

func init() {
	LoadConfig()
}

// LoadConfig reads config.json (or config-<ENV>.json) and applies environment overlays and defaults.
func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	decode()
}

// LoadConfigFile replaces the current configuration with the content of an explicit file.
func LoadConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	logger.GetLogger().WithField("config", path).Info("Config set up successfully")
	decode()
	return nil
}

func decode() {
	C = Config{}
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	initDatabase(&C)
	initRedis(&C)
	initApp(&C)
	initAnalysis(&C)
	initFavorites(&C)
	initLogger(&C)
}

func getConfig() string {
	name := "config"
	if env := getEnv("ENV", ""); env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	C.Database.Psql.Name = getConfigValue(C.Database.Psql.Name, "DB_NAME", "")
	C.Database.Psql.Host = getConfigValue(C.Database.Psql.Host, "DB_HOST", "localhost")
	C.Database.Psql.Port = getConfigValue(C.Database.Psql.Port, "DB_PORT", "5432")
	C.Database.Psql.User = getConfigValue(C.Database.Psql.User, "DB_USER", "")
	C.Database.Psql.Password = getConfigValue(C.Database.Psql.Password, "DB_PASSWORD", "")
	C.Database.Psql.SSLMode = getConfigValue(C.Database.Psql.SSLMode, "DB_SSLMODE", "disable")
}

func initRedis(C *Config) {
	C.RedisClient.Host = getConfigValue(C.RedisClient.Host, "REDIS_HOST", "localhost")
	C.RedisClient.Port = getConfigValue(C.RedisClient.Port, "REDIS_PORT", "6379")
	C.RedisClient.Password = getConfigValue(C.RedisClient.Password, "REDIS_PASSWORD", "")
	C.RedisClient.Username = getConfigValue(C.RedisClient.Username, "REDIS_USERNAME", "")
	C.RedisClient.DatabaseName = getConfigValue(C.RedisClient.DatabaseName, "REDIS_DB", "0")
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 3000
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = DefaultPort
	}
	C.App.AssetDir = getConfigValue(C.App.AssetDir, "ASSET_DIR", "web")
	C.App.DistDir = getConfigValue(C.App.DistDir, "DIST_DIR", "dist")
	C.App.ExportDir = getConfigValue(C.App.ExportDir, "EXPORT_DIR", "")
	C.YouTube.APIKey = getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", "")
	C.YouTube.Endpoint = getConfigValue(C.YouTube.Endpoint, "YOUTUBE_ENDPOINT", "")
}

func initAnalysis(C *Config) {
	C.Analysis.Locale = getConfigValue(C.Analysis.Locale, "ANALYSIS_LOCALE", DefaultLocale)
	C.Analysis.Timezone = getConfigValue(C.Analysis.Timezone, "ANALYSIS_TIMEZONE", DefaultTimezone)
	C.Analysis.TimezoneLabel = getConfigValue(C.Analysis.TimezoneLabel, "ANALYSIS_TIMEZONE_LABEL", DefaultTimezoneLabel)
}

func initFavorites(C *Config) {
	C.Favorites.Backend = getConfigValue(C.Favorites.Backend, "FAVORITES_BACKEND", BackendFile)
	C.Favorites.Path = getConfigValue(C.Favorites.Path, "FAVORITES_PATH", "favorites.json")
	C.Favorites.Key = getConfigValue(C.Favorites.Key, "FAVORITES_KEY", DefaultFavoritesKey)
}

func initLogger(C *Config) {
	C.Logger.Format = getConfigValue(C.Logger.Format, "LOG_FORMAT", "json")
	C.Logger.Level = getConfigValue(C.Logger.Level, "LOG_LEVEL", "debug")
}

// Validate checks the settings a command needs before it starts.
// requireAPIKey is false for commands that never talk to YouTube (build).
func (c *Config) Validate(requireAPIKey bool) error {
	var errs []error
	if requireAPIKey && c.YouTube.APIKey == "" {
		errs = append(errs, errors.New("youtube.apiKey is required (set YOUTUBE_API_KEY)"))
	}
	switch c.Favorites.Backend {
	case BackendFile, BackendRedis, BackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown favorites backend %q", c.Favorites.Backend))
	}
	if c.Favorites.Backend == BackendPostgres && c.Database.Psql.Name == "" {
		errs = append(errs, errors.New("database.psql.name is required for the postgres favorites backend"))
	}
	if _, err := time.LoadLocation(c.Analysis.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("unknown analysis timezone %q: %w", c.Analysis.Timezone, err))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.App.Port))
	}
	return errors.Join(errs...)
}
