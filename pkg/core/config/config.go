// Package config loads the application settings from a YAML file.
// Every field has a working default so the binaries run with no config
// file at all; DATABASE_URL and API keys stay in the environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	LLM        LLMConfig        `yaml:"llm"`
	Assessment AssessmentConfig `yaml:"assessment"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"` // Optional override
}

type AssessmentConfig struct {
	DefaultIndustry string `yaml:"default_industry"`
	HorizonMonths   int    `yaml:"horizon_months"`
	DefaultLanguage string `yaml:"default_language"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		LLM:    LLMConfig{Provider: "gemini"},
		Assessment: AssessmentConfig{
			DefaultIndustry: "default",
			HorizonMonths:   3,
			DefaultLanguage: "en",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error: the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("CONFIG_READ_ERROR: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("CONFIG_PARSE_ERROR: %v", err)
	}

	if cfg.Assessment.HorizonMonths < 1 {
		cfg.Assessment.HorizonMonths = 3
	}

	return cfg, nil
}
