package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	DatabasePath        string `json:"databasePath"`
	ListenAddr          string `json:"listenAddr"`
	ExpiryThresholdDays int    `json:"expiryThresholdDays"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./sarisari_config.json"

const defaultExpiryThresholdDays = 7

func applyDefaults(c *Config) {
	if c.DatabasePath == "" {
		c.DatabasePath = "./store_v2.db"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.ExpiryThresholdDays == 0 {
		c.ExpiryThresholdDays = defaultExpiryThresholdDays
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	var loaded Config
	file, err := os.ReadFile(configFilePath)
	if err == nil {
		err = json.Unmarshal(file, &loaded)
	} else if os.IsNotExist(err) {
		err = nil
	}

	applyDefaults(&loaded)
	cfg = loaded
	return cfg, err
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	c := cfg
	applyDefaults(&c)
	return c
}
