package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mintara/auction-house/internal/log"
	"go.uber.org/zap"
)

type Config struct {
	Env       string
	Network   string
	Debug     bool
	LogPath   string
	SentryDsn string

	ApiPort    string
	HealthPort string

	TradeStateDeposit uint64

	Database      DatabaseConfig
	AssetRegistry AssetRegistryConfig
	ElasticSearch ElasticSearchConfig
	Amqp          AmqpConfig
}

type DatabaseConfig struct {
	Path string
}

type AssetRegistryConfig struct {
	Url        string
	Timeout    int
	RetryMax   int
	Debug      bool
}

type ElasticSearchConfig struct {
	Hosts       []string
	Sniff       bool
	HealthCheck bool
	Debug       bool
	Username    string
	Password    string
	Refresh     string
}

type AmqpConfig struct {
	Uri string
}

func Init(service string) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(service)
}

func initLogger(service string) {
	cfg := Get()
	log.NewLogger(fmt.Sprintf("%s-%s.log", cfg.LogPath, service), cfg.Debug, cfg.SentryDsn)
}

func Get() *Config {
	return &Config{
		Env:               getString("ENV", ""),
		Network:           getString("NETWORK", "mainnet"),
		Debug:             getBool("DEBUG", false),
		LogPath:           getString("LOG_PATH", "./var/auction-house"),
		SentryDsn:         getString("SENTRY_DSN", ""),
		ApiPort:           getString("API_PORT", "8080"),
		HealthPort:        getString("HEALTH_PORT", "8081"),
		TradeStateDeposit: getUint64("TRADE_STATE_DEPOSIT", 1000),
		Database: DatabaseConfig{
			Path: getString("DATABASE_PATH", "./var/auction-house.db"),
		},
		AssetRegistry: AssetRegistryConfig{
			Url:      getString("ASSET_REGISTRY_URL", ""),
			Timeout:  getInt("ASSET_REGISTRY_TIMEOUT", 30),
			RetryMax: getInt("ASSET_REGISTRY_RETRIES", 3),
			Debug:    getBool("ASSET_REGISTRY_DEBUG", false),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:       getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:       getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck: getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:       getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:    getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:    getString("ELASTIC_SEARCH_PASSWORD", ""),
			Refresh:     getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
		Amqp: AmqpConfig{
			Uri: getString("AMQP_URI", ""),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getUint64(key string, defaultValue uint64) uint64 {
	valStr := getString(key, "")
	val, err := strconv.ParseUint(valStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return val
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
