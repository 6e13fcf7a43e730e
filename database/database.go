package database

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"outtech105.com/busroute_server/config"
)

func init() {
	// modernc.org/sqlite は "sqlite" で登録されるため、プレースホルダ種別を明示
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// 設定のドライバ名をdatabase/sqlの登録名に変換
func DriverName(driver string) string {
	switch driver {
	case "postgres", "pgx":
		return "pgx"
	default:
		return driver
	}
}

// DSNが未指定なら接続情報から組み立てる
func DataSourceName(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	switch DriverName(cfg.Driver) {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(portOrDefault(cfg.Port, 3306)))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	case "pgx":
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(portOrDefault(cfg.Port, 5432))),
			Path:   "/" + cfg.Name,
		}
		return u.String()
	default:
		return cfg.Name
	}
}

func portOrDefault(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}

// DB接続処理(MaxRetryだけ試行)
func ConnectDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver := DriverName(cfg.Driver)
	dsn := DataSourceName(cfg)
	maxRetryCount := max(cfg.MaxRetry, 1)

	for r := 1; r <= maxRetryCount; r++ {
		db, err := sqlx.Open(driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("dbConnection: %w", err)
		}

		// DB接続が確立されたら離脱
		err = db.Ping()
		if err == nil {
			configurePool(db, driver)
			log.Printf("DB connection successful (%s)", driver)
			return db, nil
		}
		db.Close()

		log.Printf("DB connection error (%d/%d): %v", r, maxRetryCount, err)
		if r < maxRetryCount {
			time.Sleep(cfg.RetryInterval)
		}
	}
	return nil, fmt.Errorf("DB connection error occured %d times", maxRetryCount)
}

func configurePool(db *sqlx.DB, driver string) {
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
		return
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
}
