package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Upstream struct {
	BaseURL string        `yaml:"BASE_URL" env:"API_BASE_URL" env-default:"https://halchash-nodejs-backend.onrender.com"`
	Timeout time.Duration `yaml:"TIMEOUT" env:"API_TIMEOUT" env-default:"15s"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:"default"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	CatalogTTL time.Duration `yaml:"catalog_ttl" env:"CACHE_CATALOG_TTL" env-default:"2m"`
}

type Cookies struct {
	TTL    time.Duration `yaml:"ttl" env:"COOKIE_TTL" env-default:"168h"`
	Secure bool          `yaml:"secure" env:"COOKIE_SECURE" env-default:"false"`
	Domain string        `yaml:"domain" env:"COOKIE_DOMAIN"`
}

// Shipping holds the delivery-zone fees in taka.
type Shipping struct {
	InsideDhaka  float64 `yaml:"inside_dhaka" env:"SHIPPING_INSIDE_DHAKA" env-default:"60"`
	OutsideDhaka float64 `yaml:"outside_dhaka" env:"SHIPPING_OUTSIDE_DHAKA" env-default:"120"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@halchash.com"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Halchash.com"`
	// ShopCopy receives a blind copy of every order confirmation.
	ShopCopy string `yaml:"SHOP_COPY" env:"SENDGRID_SHOP_COPY"`
	// Host overrides the SendGrid API host.
	Host string `yaml:"HOST" env:"SENDGRID_HOST"`
}

type OtelConfig struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"halchash-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

// Admin guards operator endpoints such as the catalog refresh.
type Admin struct {
	Token string `yaml:"token" env:"ADMIN_TOKEN"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Upstream     Upstream     `yaml:"upstream"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Cookies      Cookies      `yaml:"cookies"`
	Shipping     Shipping     `yaml:"shipping"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Otel         OtelConfig   `yaml:"otel"`
	Admin        Admin        `yaml:"admin"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}

// Enabled reports whether order confirmation mails can be sent.
func (s *SendGrid) Enabled() bool {
	return s.APIKey != ""
}
