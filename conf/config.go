package conf

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 配置加载（数据库、密钥等）

type Db struct {
	Driver   string `yaml:"driver"` // mysql | postgres | sqlite，为空时不连接数据库，使用null网关
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

// JwtConfig 后端服务签发的token校验参数
type JwtConfig struct {
	Secret    string `yaml:"secret"`
	AdminRole string `yaml:"admin_role"` // app_metadata.role 等于该值时为管理员
}

type KafkaConfig struct {
	Broker  string `yaml:"broker"`
	Topic   string `yaml:"topic"`
	GroupID string `yaml:"group_id"`
}

type EmailConfig struct {
	Host       string   `yaml:"smtp_host"`
	Port       int      `yaml:"smtp_port"`
	Username   string   `yaml:"smtp_user"`
	Password   string   `yaml:"smtp_password"`
	Sender     string   `yaml:"smtp_sender"`
	Recipients []string `yaml:"admin_recipients"`
}

type Apns struct {
	KeyFile      string   `yaml:"key_file"` // .p8
	Topic        string   `yaml:"topic"`
	KeyID        string   `yaml:"key_id"`
	TeamID       string   `yaml:"team_id"`
	IsProd       bool     `yaml:"is_prod"`
	DeviceTokens []string `yaml:"device_tokens"` // 管理员设备
}

type AppleConfig struct {
	Apns Apns `yaml:"apns"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type PaypalConfig struct {
	ClientID  string `yaml:"client_id"`
	Secret    string `yaml:"secret"`
	IsProd    bool   `yaml:"is_prod"`
	Currency  string `yaml:"currency"`
	ReturnURL string `yaml:"return_url"`
	CancelURL string `yaml:"cancel_url"`
}

func (p PaypalConfig) Enabled() bool {
	return p.ClientID != "" && p.Secret != ""
}

type DownloadConfig struct {
	Root         string        `yaml:"root"`          // robot文件所在目录
	TicketSecret string        `yaml:"ticket_secret"` // 下载票据密钥，32字节
	TicketTTL    time.Duration `yaml:"ticket_ttl"`
}

type CalculatorConfig struct {
	Currency string `yaml:"currency"`
}

type CaptchaConfig struct {
	Font string `yaml:"font"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

// PlanConfig 后端不可用时展示的套餐目录
type PlanConfig struct {
	Code         string   `yaml:"code"`
	Name         string   `yaml:"name"`
	MonthlyPrice float64  `yaml:"monthly_price"`
	Tier         int      `yaml:"tier"`
	Features     []string `yaml:"features"`
	Highlight    bool     `yaml:"highlight"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`
	ExternalURL  string `yaml:"external_url"`
	NodeId       int64  `yaml:"node_id"` // snowflake节点，多实例部署时各不相同

	Db         `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Jwt        JwtConfig        `yaml:"jwt"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Email      EmailConfig      `yaml:"email"`
	Apple      AppleConfig      `yaml:"apple"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Paypal     PaypalConfig     `yaml:"paypal"`
	Download   DownloadConfig   `yaml:"download"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Captcha    CaptchaConfig    `yaml:"captcha"`
	RateLimit  RateLimitConfig  `yaml:"ratelimit"`
	Plans      []PlanConfig     `yaml:"plans"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	// .env 不存在时忽略
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.applyDefaults()
	AppConfig = cfg
	return nil
}

// 环境变量优先于配置文件
func (c *Config) applyEnv() {
	setString(&c.Db.Driver, "DB_DRIVER")
	setString(&c.Db.Username, "DB_USER")
	setString(&c.Db.Password, "DB_PASSWORD")
	setString(&c.Db.Host, "DB_HOST")
	setString(&c.Db.Port, "DB_PORT")
	setString(&c.Db.DbName, "DB_NAME")
	setString(&c.Jwt.Secret, "JWT_SECRET")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Kafka.Broker, "KAFKA_BROKER")
	setString(&c.Paypal.ClientID, "PAYPAL_CLIENT_ID")
	setString(&c.Paypal.Secret, "PAYPAL_SECRET")
	setString(&c.Telegram.Token, "TELEGRAM_TOKEN")
	setString(&c.Download.TicketSecret, "DOWNLOAD_TICKET_SECRET")

	host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")
	if host != "" && port != "" {
		c.Redis.Addr = host + ":" + port
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
}

func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "robodesk"
	}
	if c.Listen == "" {
		c.Listen = ":12180"
	}
	if c.MaxPingCount <= 0 {
		c.MaxPingCount = 10
	}
	if c.Jwt.AdminRole == "" {
		c.Jwt.AdminRole = "admin"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "robodesk_changes"
	}
	if c.Download.TicketTTL <= 0 {
		c.Download.TicketTTL = 10 * time.Minute
	}
	if c.Calculator.Currency == "" {
		c.Calculator.Currency = "R$"
	}
	if c.Paypal.Currency == "" {
		c.Paypal.Currency = "BRL"
	}
	if c.RateLimit.PerMinute <= 0 {
		c.RateLimit.PerMinute = 6
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 3
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
