package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" validate:"gte=1,lte=65535"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" validate:"oneof=mysql postgres pgx sqlite"`
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name" validate:"required_without=DSN"`
	// routesテーブルの時間帯カラム名 (無い場合は空)
	PeriodColumn  string        `yaml:"period_column"`
	MaxRetry      int           `yaml:"max_retry" validate:"gte=1"`
	RetryInterval time.Duration `yaml:"retry_interval"`
}

type SearchConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	// 時間帯トークン → 路線ID接頭辞
	Periods map[string]string `yaml:"periods" validate:"dive,keys,required,endkeys,required"`
}

type SnapshotConfig struct {
	// 0ならキャッシュせず毎リクエストDBを参照
	TTL time.Duration `yaml:"ttl"`
}

const DefaultFile = "config.yml"

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            80,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:        "mysql",
			Host:          "db",
			MaxRetry:      10,
			RetryInterval: 5 * time.Second,
		},
		Search: SearchConfig{
			Timeout: 10 * time.Second,
			Periods: map[string]string{"AM": "AM", "MD": "MD", "PM": "PM"},
		},
	}
}

// .env → 設定ファイル → 環境変数 の順に読み込み、検証する
// pathが空の場合はCONFIG_FILE、それも無ければconfig.yml (無くても可)
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_FILE")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// mapは既定値にマージされるため、ファイルの指定で置き換える
		cfg.Search.Periods = nil
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parseConfig %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("readConfig: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if len(cfg.Search.Periods) == 0 {
		cfg.Search.Periods = Default().Search.Periods
	}
	cfg.Search.Periods = normalizePeriods(cfg.Search.Periods)
	if !isIdentifier(cfg.Database.PeriodColumn) {
		return Config{}, fmt.Errorf("validateConfig: invalid period_column %q", cfg.Database.PeriodColumn)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validateConfig: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN", "DATABASE_URL")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER", "MYSQL_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD", "MYSQL_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME", "MYSQL_DATABASE", "SQLITE_DATABASE")
	setString(&cfg.Database.PeriodColumn, "DB_PERIOD_COLUMN")

	if err := setInt(&cfg.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Server.Port, "PORT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Snapshot.TTL, "SNAPSHOT_TTL"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Search.Timeout, "SEARCH_TIMEOUT"); err != nil {
		return err
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, origin)
			}
		}
	}
	return nil
}

// 最初に見つかった環境変数で上書き
func setString(dst *string, keys ...string) {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			*dst = v
			return
		}
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func normalizePeriods(periods map[string]string) map[string]string {
	normalized := make(map[string]string, len(periods))
	for token, prefix := range periods {
		normalized[strings.ToUpper(strings.TrimSpace(token))] = prefix
	}
	return normalized
}

// SQLに埋め込むため英数字と_のみ許可 (空は可)
func isIdentifier(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
