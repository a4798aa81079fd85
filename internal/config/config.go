package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Mode          string `mapstructure:"mode"`
	Port          int    `mapstructure:"port"`
	Secret        string `mapstructure:"secret"`
	LogLevel      string `mapstructure:"log_level"`
	SessionAPIURL string `mapstructure:"session_api_url"`
	SignalingURL  string `mapstructure:"signaling_url"`
	UserID        string `mapstructure:"user_id"`
	AppointmentID int64  `mapstructure:"appointment_id"`
	PatientID     int64  `mapstructure:"patient_id"`
	DoctorID      int64  `mapstructure:"doctor_id"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8090)
	v.SetDefault("log_level", "info")
	v.SetDefault("session_api_url", "http://localhost:8080")
	v.SetDefault("signaling_url", "ws://localhost:9090/ws/room")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
