package config

import (
	"flag"
	"fmt"
	"log"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SourceStatic   = "static"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

type DBConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" validate:"required"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432" validate:"required"`
	Username string `yaml:"username" env:"DB_USERNAME" validate:"required"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Database string `yaml:"database" env:"DB_DATABASE" validate:"required"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`

	// SkipMigrations leaves the schema alone when it is managed elsewhere.
	SkipMigrations bool `yaml:"skip_migrations" env:"DB_SKIP_MIGRATIONS"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr" env:"REDIS_ADDR" validate:"required,hostname_port"`
	Username  string `yaml:"username" env:"REDIS_USERNAME"`
	Password  string `yaml:"password" env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"REDIS_DB" validate:"gte=0,lte=15"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"message:"`
}

// SourceConfig selects the backend the printer reads its message from.
type SourceConfig struct {
	Kind    string `yaml:"kind" env:"SOURCE_KIND" env-default:"static" validate:"oneof=static postgres redis"`
	Key     string `yaml:"key" env:"SOURCE_KEY" env-default:"employee" validate:"required"`

	// Message may be empty, so it carries no env-default.
	Message string `yaml:"message" env:"SOURCE_MESSAGE"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Path  string `yaml:"path" env:"LOG_PATH" env-default:"logs/app.log"`
}

type Config struct {
	configPath string
	App        struct {
		Name     string `yaml:"name" env:"APP_NAME" env-default:"message_printer" validate:"required"`
		Schedule string `yaml:"schedule" env:"APP_SCHEDULE"`
	} `yaml:"app"`
	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT" env-default:"3000" validate:"required,numeric"`
	} `yaml:"http"`
	Log    LogConfig    `yaml:"log"`
	Source SourceConfig `yaml:"source"`
	DB     DBConfig     `yaml:"db" validate:"-"`
	Redis  RedisConfig  `yaml:"redis" validate:"-"`
}

var instance *Config
var once sync.Once

// GetConfig reads the file named by the -config flag once per process.
func GetConfig() *Config {
	once.Do(func() {
		var configPath string
		flag.StringVar(
			&configPath,
			"config",
			"config.yaml",
			"this is app config file",
		)
		flag.Parse()

		cfg, err := Load(configPath)
		if err != nil {
			log.Fatal(err)
		}
		instance = cfg
	})
	return instance
}

func Load(path string) (*Config, error) {
	cfg := &Config{configPath: path}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the common settings and the settings of the selected
// source. Backend sections of unused sources are not checked.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.Source.Kind {
	case SourcePostgres:
		if err := validate.Struct(c.DB); err != nil {
			return fmt.Errorf("invalid db config: %w", err)
		}
	case SourceRedis:
		if err := validate.Struct(c.Redis); err != nil {
			return fmt.Errorf("invalid redis config: %w", err)
		}
	}
	return nil
}

func (c *Config) Path() string {
	return c.configPath
}
