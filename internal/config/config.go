package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Kafka     KafkaConfig
	Lifecycle LifecycleConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port int
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// LifecycleConfig drives the order scheduler. The thresholds are the elapsed
// time in a status before the next automatic transition becomes due; tests
// inject arbitrarily small values.
type LifecycleConfig struct {
	ConfirmAfter  time.Duration
	ShipAfter     time.Duration
	DeliverAfter  time.Duration
	TickInterval  time.Duration
	UpdateTimeout time.Duration
	MaxInFlight   int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "farmfresh")
	viper.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	viper.SetDefault("KAFKA_ENABLED", false)
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "order.status.changed")
	viper.SetDefault("ORDER_CONFIRM_AFTER", "10m")
	viper.SetDefault("ORDER_SHIP_AFTER", "30m")
	viper.SetDefault("ORDER_DELIVER_AFTER", "1h")
	viper.SetDefault("ORDER_TICK_INTERVAL", "30s")
	viper.SetDefault("ORDER_UPDATE_TIMEOUT", "5s")
	viper.SetDefault("ORDER_MAX_IN_FLIGHT", 8)
	viper.SetDefault("LOG_LEVEL", "info")

	durations := map[string]*time.Duration{}
	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		Kafka: KafkaConfig{
			Enabled: viper.GetBool("KAFKA_ENABLED"),
			Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
		Lifecycle: LifecycleConfig{
			MaxInFlight: viper.GetInt("ORDER_MAX_IN_FLIGHT"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	durations["MONGO_CONNECT_TIMEOUT"] = &cfg.Mongo.ConnectTimeout
	durations["ORDER_CONFIRM_AFTER"] = &cfg.Lifecycle.ConfirmAfter
	durations["ORDER_SHIP_AFTER"] = &cfg.Lifecycle.ShipAfter
	durations["ORDER_DELIVER_AFTER"] = &cfg.Lifecycle.DeliverAfter
	durations["ORDER_TICK_INTERVAL"] = &cfg.Lifecycle.TickInterval
	durations["ORDER_UPDATE_TIMEOUT"] = &cfg.Lifecycle.UpdateTimeout

	for key, dst := range durations {
		d, err := time.ParseDuration(viper.GetString(key))
		if err != nil {
			return nil, err
		}
		*dst = d
	}

	return cfg, nil
}
