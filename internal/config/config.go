package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	BackendQueue  = "queue"
	BackendRunner = "runner"

	NotifierRedis = "redis"
	NotifierKafka = "kafka"
)

type Config struct {
	Postgres    DBConfig
	Redis       RedisConfig
	S3          S3Config
	Logger      Logger
	Worker      WorkerConfig
	Transcoding TranscodingConfig
	Runner      RunnerConfig
}

type WorkerConfig struct {
	WorkerCount  int     `validate:"gte=0"`
	MaxCPUUsage  float64 `validate:"gte=0,lte=100"`
	PollInterval int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
	SSLMode  string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	UseTLS        bool
	KeyPrefix     string
}

type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	InputBucket   string
	PresignExpire int
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

// TranscodingConfig selects the execution backend for job graphs. Backend is
// a deployment decision and is read once at startup.
type TranscodingConfig struct {
	Backend  string `validate:"required,oneof=queue runner"`
	JobClass string `validate:"omitempty,oneof=vod studio"`
	// FallbackPriority must stay above every backend's minimum so a
	// higher-priority payload can still be made more urgent than its base.
	FallbackPriority *int `validate:"omitempty,gte=2"`
	MaxAttempts      int  `validate:"gte=0"`
}

type RunnerConfig struct {
	Notifier     string `validate:"omitempty,oneof=redis kafka"`
	Channel      string
	KafkaBrokers []string `validate:"required_if=Notifier kafka"`
	KafkaTopic   string   `validate:"required_if=Notifier kafka"`
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("transcoding.backend", BackendQueue)
	v.SetDefault("transcoding.jobclass", "vod")
	v.SetDefault("transcoding.maxattempts", 3)
	v.SetDefault("worker.workercount", 1)
	v.SetDefault("worker.maxcpuusage", 80.0)
	v.SetDefault("worker.pollinterval", 2)
	v.SetDefault("runner.notifier", NotifierRedis)
	v.SetDefault("runner.channel", "runner:jobs-available")
	v.SetDefault("s3.presignexpire", 60)
	v.SetDefault("postgres.pgdriver", "pgx")
	v.SetDefault("postgres.sslmode", "require")
	v.SetDefault("redis.keyprefix", "vt")
}
