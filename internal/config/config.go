package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string
	Env  string
	Host string
	Port int
}

type AuthCfg struct {
	JWTSecret string
	Issuer    string
}

type LogCfg struct {
	Level string
}

type DBCfg struct {
	DSN         string
	MaxOpen     int
	MaxIdle     int
	AutoMigrate bool
}

type RedisCfg struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// key prefix for per-user view state
	ActiveSpacePrefix string
}

type MQCfg struct {
	URL         string
	RecalcQueue string
}

type S3Cfg struct {
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UsePathStyle     bool
	PresignExpireSec int
	SSE              string
	ExportPrefix     string
}

type TelemetryCfg struct {
	Enabled      bool
	OtlpEndpoint string
	SampleRatio  float64
}

type Config struct {
	App       AppCfg
	Auth      AuthCfg
	Log       LogCfg
	Database  DBCfg
	Redis     RedisCfg
	RabbitMQ  MQCfg
	S3        S3Cfg
	Telemetry TelemetryCfg
}

func Load() (*Config, error) {
	base := viper.New()
	base.SetConfigName("config")
	base.SetConfigType("yaml")
	base.AddConfigPath("./configs")
	base.AddConfigPath(".")
	base.AutomaticEnv()
	base.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	base.SetEnvPrefix("APP") // e.g. APP_APP_PORT -> app.port

	setDefaults(base)

	if err := base.ReadInConfig(); err == nil {
		// expand ${ENV} once before parsing
		raw, err := os.ReadFile(base.ConfigFileUsed())
		if err != nil {
			return nil, err
		}
		return parse(os.ExpandEnv(string(raw)))
	}

	// no file: env + defaults only
	cfg := new(Config)
	if err := base.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(expanded string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, err
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	setDefaults(v)

	cfg := new(Config)
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tabletop-api")
	v.SetDefault("app.env", "debug")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.maxOpen", 20)
	v.SetDefault("database.maxIdle", 5)
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.activeSpacePrefix", "active_game_space:")
	v.SetDefault("rabbitmq.recalcQueue", "character_recalculate")
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.usePathStyle", true)
	v.SetDefault("s3.presignExpireSec", 900)
	v.SetDefault("s3.exportPrefix", "exports")
	v.SetDefault("telemetry.sampleRatio", 1.0)
}
