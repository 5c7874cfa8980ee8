package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/db"
)

type Config struct {
	DatabaseURL   string
	DatabaseType  string
	Port          string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	ConfigFile    string
}

// DatasourceConfig is the optional YAML datasource definition. When the
// file exists it overrides the DATABASE_URL environment variable.
type DatasourceConfig struct {
	Database struct {
		Type             string `yaml:"type"`
		ConnectionString string `yaml:"connection_string,omitempty"`
		File             string `yaml:"file,omitempty"`
	} `yaml:"database"`
}

func LoadConfig() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "root:password@tcp(localhost:3306)/app?parseTime=true"),
		DatabaseType:  getEnv("DATABASE_TYPE", string(db.StoreTypeMySQL)),
		Port:          getEnv("PORT", "8080"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ConfigFile:    getEnv("CONFIG_FILE", "config.yaml"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadDatasourceFile reads the YAML datasource config when present.
func loadDatasourceFile(path string) (*DatasourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config DatasourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse datasource config: %w", err)
	}

	return &config, nil
}

// storeConfig resolves the effective store connection settings, preferring
// the YAML file over environment variables.
func (c *Config) storeConfig() (db.StoreType, string) {
	if file, err := loadDatasourceFile(c.ConfigFile); err == nil {
		storeType := db.StoreType(file.Database.Type)
		if storeType == db.StoreTypeSQLite && file.Database.File != "" {
			return storeType, file.Database.File
		}
		if file.Database.ConnectionString != "" {
			return storeType, file.Database.ConnectionString
		}
	}

	return db.StoreType(c.DatabaseType), c.DatabaseURL
}
