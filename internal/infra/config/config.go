package config

import (
	"fmt"
	"os"
	"strings"
)

// DefaultVehicles is the fleet the board tracks when VEHICLE_NAMES is unset.
var DefaultVehicles = []string{"マイクロ1", "マイクロ2", "小型1", "小型2", "中型1", "大型1"}

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env       string
	HTTPAddr  string
	StoreMode string

	MongoURI string
	MongoDB  string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	Vehicles []string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	UpcomingDays int
}

// Load parses configuration from the current environment. STORE_MODE=memory
// runs fully in-process and waives the Mongo/Kafka requirements.
func Load() (Config, error) {
	cfg := Config{
		Env:          getEnv("APP_ENV", "dev"),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		StoreMode:    strings.ToLower(getEnv("STORE_MODE", "mongo")),
		MongoURI:     os.Getenv("MONGO_URI"),
		MongoDB:      getEnv("MONGO_DB", "dispatch"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "schedule-changes"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "dispatch-board"),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:  getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:     getEnv("S3_BUCKET", "dispatch-exports"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	cfg.Vehicles = DefaultVehicles
	if names := getEnv("VEHICLE_NAMES", ""); names != "" {
		cfg.Vehicles = nil
		for _, raw := range strings.Split(names, ",") {
			if name := strings.TrimSpace(raw); name != "" {
				cfg.Vehicles = append(cfg.Vehicles, name)
			}
		}
	}
	if len(cfg.Vehicles) == 0 {
		return Config{}, fmt.Errorf("VEHICLE_NAMES resolves to an empty fleet")
	}

	days, err := parseIntEnv("UPCOMING_DAYS", 4)
	if err != nil {
		return Config{}, err
	}
	cfg.UpcomingDays = days

	useSSL, err := parseBoolEnv("S3_USE_SSL", false)
	if err != nil {
		return Config{}, err
	}
	cfg.S3UseSSL = useSSL

	switch cfg.StoreMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required")
		}
		if len(cfg.KafkaBrokers) == 0 {
			return Config{}, fmt.Errorf("KAFKA_BROKERS is required")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORE_MODE: %q", cfg.StoreMode)
	}
	return cfg, nil
}

// ArchiveEnabled reports whether CSV exports should be copied to object
// storage.
func (c Config) ArchiveEnabled() bool {
	return c.S3Endpoint != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	var i int
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d", &i); err != nil {
		return 0, fmt.Errorf("invalid %s integer: %q", key, raw)
	}
	return i, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
