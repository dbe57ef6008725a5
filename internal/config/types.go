// Package config loads and validates the YAML configuration file.
package config

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Session  SessionConfig  `yaml:"session"`
	Model    ModelConfig    `yaml:"model"`
	Datasets DatasetsConfig `yaml:"datasets"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
}

// ServerConfig configures the HTTP gateway.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional log file, in addition to console
}

// SessionConfig selects the session store driver.
type SessionConfig struct {
	Store      string      `yaml:"store"` // memory, sqlite or redis
	SQLitePath string      `yaml:"sqlitePath"`
	Redis      RedisConfig `yaml:"redis"`
	TTLHours   int         `yaml:"ttlHours"` // redis only
}

// RedisConfig configures the redis session driver.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ModelConfig configures the language model provider.
type ModelConfig struct {
	Provider string `yaml:"provider"` // openai or mock
	BaseURL  string `yaml:"baseUrl"`
	APIKey   string `yaml:"apiKey"`
	Name     string `yaml:"name"`
}

// DatasetsConfig points at the travel data files. Missing files degrade to
// an empty dataset; they do not fail startup.
type DatasetsConfig struct {
	Hotels      string `yaml:"hotels"`
	Attractions string `yaml:"attractions"`
	Templates   string `yaml:"templates"`
}

// LexiconConfig optionally overrides the built-in moderation word lists.
type LexiconConfig struct {
	Path string `yaml:"path"`
}
