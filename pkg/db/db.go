package db

import (
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB   *gorm.DB
	once sync.Once
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite" // 本地开发，DBName为文件路径
)

type Config struct {
	Driver    string
	User      string
	Password  string
	Host      string
	Port      string
	DBName    string
	SSLMode   string // postgres
	Charset   string // optional
	Loc       string // optional
	ParseTime bool   // optional
}

func NewConfig(driver, user, password, host, port, dbName string) Config {
	return Config{
		Driver:    driver,
		User:      user,
		Password:  password,
		Host:      host,
		Port:      port,
		DBName:    dbName,
		Charset:   "utf8mb4",
		Loc:       "Local",
		ParseTime: true,
	}
}

func (cfg Config) DSN() string {
	if cfg.Driver == DriverSQLite {
		if cfg.DBName == "" {
			return ":memory:"
		}
		return cfg.DBName
	}
	if cfg.Driver == DriverPostgres {
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "require"
		}
		port := cfg.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.DBName, port, sslMode)
	}

	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	loc := cfg.Loc
	if loc == "" {
		loc = "Local"
	}
	addr := cfg.Host
	if cfg.Port != "" {
		addr = cfg.Host + ":" + cfg.Port
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=%s",
		cfg.User, cfg.Password, addr, cfg.DBName, charset, cfg.ParseTime, loc,
	)
}

func (cfg Config) dialector() (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Init 连接数据库，只初始化一次
func Init(cfg Config) (*gorm.DB, error) {
	var err error
	once.Do(func() {
		var dialector gorm.Dialector
		dialector, err = cfg.dialector()
		if err != nil {
			return
		}
		DB, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			err = fmt.Errorf("failed to connect to database: %w", err)
			return
		}

		// Set connection pool
		sqlDB, _ := DB.DB()
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	})
	return DB, err
}

// Close 关闭连接池
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
