package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ProcessorConfig holds the tunables of the transaction processor and its side effects
type ProcessorConfig struct {
	CardCacheTTL         time.Duration
	OrganizationCacheTTL time.Duration
	LockWaitTimeout      time.Duration
	SideEffectTimeout    time.Duration
	CacheKeyPrefix       string
	EventSink            string
	KafkaApprovedTopic   string
	KafkaRejectedTopic   string
	KafkaMaxRetries      int
}

var processorBindings = []envBinding{
	{"processor.card_cache_ttl", "CARD_CACHE_TTL"},
	{"processor.organization_cache_ttl", "ORGANIZATION_CACHE_TTL"},
	{"processor.lock_wait_timeout", "LOCK_WAIT_TIMEOUT"},
	{"processor.side_effect_timeout", "SIDE_EFFECT_TIMEOUT"},
	{"cache.key_prefix", "CACHE_KEY_PREFIX"},
	{"events.sink", "EVENT_SINK"},
	{"kafka.approved_topic", "KAFKA_APPROVED_TOPIC"},
	{"kafka.rejected_topic", "KAFKA_REJECTED_TOPIC"},
	{"kafka.max_retries", "KAFKA_MAX_RETRIES"},
}

// LoadProcessorConfig reads the processor settings from viper. Call InitViper first to pick up
// the config file; environment variables are honored either way.
func LoadProcessorConfig() *ProcessorConfig {
	bindEnv(processorBindings)

	return &ProcessorConfig{
		CardCacheTTL:         getDuration("processor.card_cache_ttl", 60*time.Second),
		OrganizationCacheTTL: getDuration("processor.organization_cache_ttl", 30*time.Second),
		LockWaitTimeout:      getDuration("processor.lock_wait_timeout", 5*time.Second),
		SideEffectTimeout:    getDuration("processor.side_effect_timeout", 3*time.Second),
		CacheKeyPrefix:       getString("cache.key_prefix", "myfuel:cache:"),
		EventSink:            strings.ToLower(getString("events.sink", "log")),
		KafkaApprovedTopic:   getString("kafka.approved_topic", "transaction.approved"),
		KafkaRejectedTopic:   getString("kafka.rejected_topic", "transaction.rejected"),
		KafkaMaxRetries:      getInt("kafka.max_retries", 3),
	}
}

func getString(key, defaultVal string) string {
	if val := strings.TrimSpace(viper.GetString(key)); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	val := getString(key, "")
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Invalid integer for %s (%q), using %d", key, val, defaultVal)
		return defaultVal
	}
	return intVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := getString(key, "")
	if val == "" {
		return defaultVal
	}
	if duration, err := time.ParseDuration(val); err == nil {
		return duration
	}
	// plain integers are seconds
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Invalid duration for %s (%q), using %s", key, val, defaultVal)
	return defaultVal
}
