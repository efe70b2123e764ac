package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type envBinding struct {
	key string
	env string
}

var serverBindings = []envBinding{
	{"database.host", "DATABASE_HOST"},
	{"database.port", "DATABASE_PORT"},
	{"database.user", "DATABASE_USER"},
	{"database.password", "DATABASE_PASSWORD"},
	{"database.name", "DATABASE_NAME"},
	{"database.ssl_mode", "DATABASE_SSL_MODE"},
	{"database.auto_migrate", "DATABASE_AUTO_MIGRATE"},

	{"redis.enabled", "REDIS_ENABLED"},
	{"redis.host", "REDIS_HOST"},
	{"redis.port", "REDIS_PORT"},
	{"redis.password", "REDIS_PASSWORD"},
	{"redis.db", "REDIS_DB"},

	{"kafka.brokers", "KAFKA_BROKERS"},
	{"security.webhook_api_key", "WEBHOOK_API_KEY"},
	{"server.port", "PORT"},
}

// InitViper loads the config file when present and binds the environment variables read by the
// bootstrap helpers. Environment variables win over the file.
func InitViper(configFile string) {
	viper.SetConfigFile(configFile)
	viper.AutomaticEnv()

	bindEnv(serverBindings)
	bindEnv(processorBindings)

	viper.SetDefault("server.port", "8080")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
		return
	}

	promoteDotenv(serverBindings)
	promoteDotenv(processorBindings)
}

func bindEnv(bindings []envBinding) {
	for _, b := range bindings {
		viper.BindEnv(b.key, b.env)
	}
}

// promoteDotenv copies values a .env file stores under the variable name (lower-cased by viper)
// onto the nested key the code reads. A variable set in the process environment is left alone.
func promoteDotenv(bindings []envBinding) {
	for _, b := range bindings {
		if _, ok := os.LookupEnv(b.env); ok {
			continue
		}
		if val := viper.Get(strings.ToLower(b.env)); val != nil {
			viper.Set(b.key, val)
		}
	}
}
