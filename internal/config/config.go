package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server Server `mapstructure:"server"`
	OpenAI OpenAI `mapstructure:"openai"`
	Upload Upload `mapstructure:"upload"`
	Export Export `mapstructure:"export"`
	Logger Logger `mapstructure:"logger"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// OpenAI holds model API configuration
type OpenAI struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Upload holds image submission limits
type Upload struct {
	// MaxImageBytes caps the request body for image extraction.
	MaxImageBytes int64 `mapstructure:"max_image_bytes"`
	// MaxEdge is the longest image side kept after compression.
	MaxEdge     uint `mapstructure:"max_edge"`
	JPEGQuality int  `mapstructure:"jpeg_quality"`
}

// Export holds file export settings
type Export struct {
	PNGDPI float64 `mapstructure:"png_dpi"`
}

// Logger holds logger configuration
type Logger struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)

	viper.SetDefault("openai.model", "gpt-4o")
	viper.SetDefault("openai.timeout", 60*time.Second)

	// ~20 MB ceiling for invoice photo submissions.
	viper.SetDefault("upload.max_image_bytes", int64(20*1024*1024))
	viper.SetDefault("upload.max_edge", 1600)
	viper.SetDefault("upload.jpeg_quality", 85)

	viper.SetDefault("export.png_dpi", 150.0)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "console")
}

// bindEnvVars binds environment variable overrides
func bindEnvVars() {
	_ = viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = viper.BindEnv("openai.model", "OPENAI_MODEL")
	_ = viper.BindEnv("server.port", "PORT")
	_ = viper.BindEnv("logger.level", "LOG_LEVEL")
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number")
	}
	if c.Upload.MaxImageBytes <= 0 {
		return fmt.Errorf("upload.max_image_bytes must be positive")
	}
	return nil
}
