package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	WorkOrdersTable string        `mapstructure:"WORK_ORDERS_TABLE"`
	WorkOrdersOrder string        `mapstructure:"WORK_ORDERS_ORDER_BY"`
	FetchPageSize   int           `mapstructure:"FETCH_PAGE_SIZE"`
	ForecastURL     string        `mapstructure:"FORECAST_MODEL_URL"`
	ForecastPeriods int           `mapstructure:"FORECAST_PERIODS"`
	LookAheadDays   int           `mapstructure:"LOOK_AHEAD_DAYS"`
	RedisURL        string        `mapstructure:"REDIS_URL"`
	CacheTTL        time.Duration `mapstructure:"CACHE_TTL"`
	MetricsNS       string        `mapstructure:"METRICS_NAMESPACE"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("WORK_ORDERS_TABLE", "work_orders")
	v.SetDefault("WORK_ORDERS_ORDER_BY", "id")
	v.SetDefault("FETCH_PAGE_SIZE", 1000)
	v.SetDefault("FORECAST_MODEL_URL", "")
	v.SetDefault("FORECAST_PERIODS", 3)
	v.SetDefault("LOOK_AHEAD_DAYS", 30)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("METRICS_NAMESPACE", "pm")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
