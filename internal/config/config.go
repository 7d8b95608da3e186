package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProductionAPIBase  = "https://resumesync-api.azurewebsites.net/api"
	DevelopmentAPIBase = "http://localhost:5000"

	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// BuildMode selects the analysis API base. It is fixed at build time:
//
//	go build -ldflags "-X alfredoptarigan/resume-matcher/internal/config.BuildMode=production"
var BuildMode = ModeDevelopment

type Config struct {
	Server   ServerConfig
	Analyzer AnalyzerConfig
	Storage  StorageConfig
	Session  SessionConfig
	Worker   WorkerConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type AnalyzerConfig struct {
	BaseURL string
	// Timeout of zero leaves the call unbounded.
	Timeout time.Duration
}

type StorageConfig struct {
	MaxFileSize int64
}

type SessionConfig struct {
	Expiration time.Duration
}

type WorkerConfig struct {
	Concurrency int
	QueueSize   int
}

type LogConfig struct {
	Debug bool
	JSON  bool
}

func init() {
	viper.SetDefault("port", "3000")
	viper.SetDefault("read_timeout", "30s")
	viper.SetDefault("write_timeout", "30s")
	viper.SetDefault("cors_allow_origins", "*")
	viper.SetDefault("analyzer_timeout", "0s")
	viper.SetDefault("max_file_size", 10485760)
	viper.SetDefault("session_expiration", "1h")
	viper.SetDefault("worker_concurrency", 3)
	viper.SetDefault("worker_queue_size", 100)
	viper.SetDefault("debug", false)
	viper.SetDefault("json_logs", false)
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:         viper.GetString("port"),
			Env:          BuildMode,
			ReadTimeout:  viper.GetDuration("read_timeout"),
			WriteTimeout: viper.GetDuration("write_timeout"),
			AllowOrigins: viper.GetString("cors_allow_origins"),
		},
		Analyzer: AnalyzerConfig{
			BaseURL: APIBase(BuildMode),
			Timeout: viper.GetDuration("analyzer_timeout"),
		},
		Storage: StorageConfig{
			MaxFileSize: viper.GetInt64("max_file_size"),
		},
		Session: SessionConfig{
			Expiration: viper.GetDuration("session_expiration"),
		},
		Worker: WorkerConfig{
			Concurrency: positive(viper.GetInt("worker_concurrency"), 3),
			QueueSize:   positive(viper.GetInt("worker_queue_size"), 100),
		},
		Log: LogConfig{
			Debug: viper.GetBool("debug"),
			JSON:  viper.GetBool("json_logs"),
		},
	}
}

// APIBase maps a build mode to the analysis service base URL.
// Anything other than production talks to the local service.
func APIBase(mode string) string {
	if strings.EqualFold(strings.TrimSpace(mode), ModeProduction) {
		return ProductionAPIBase
	}
	return DevelopmentAPIBase
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == ModeProduction
}

func positive(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
