package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "DECOR_CONFIG_FILE"

	defaultPort           = 8000
	defaultMaxUploadBytes = 10 << 20
)

var ErrInvalidPort = errors.New("port must be in range 1-65535")

type topics struct {
	Orders          string `mapstructure:"orders"`
	ContactMessages string `mapstructure:"contact_messages"`
}

type tlsFiles struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
	TLS                tlsFiles `mapstructure:"tls"`
}

type visualizer struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

type Config struct {
	LogLevel     slog.Level `mapstructure:"log_level"`
	Port         int        `mapstructure:"port"`
	DatabaseURL  string     `mapstructure:"database_url"`
	DatabaseName string     `mapstructure:"database_name"`
	Visualizer   visualizer `mapstructure:"visualizer"`
	Broker       broker     `mapstructure:"broker"`
}

// EventsEnabled reports whether storefront events are published.
func (c Config) EventsEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env, the optional config file and the environment.
// It exits the process on failure.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		die(err)
	}

	cfg, err := load(os.Args[1:])
	if err != nil {
		die(err)
	}
	return cfg
}

func load(args []string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return Config{}, err
	}

	if path := getConfigFilepath(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port)
	}
	if cfg.Visualizer.MaxUploadBytes <= 0 {
		cfg.Visualizer.MaxUploadBytes = defaultMaxUploadBytes
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("port", defaultPort)
	v.SetDefault("database_url", "")
	v.SetDefault("database_name", "")
	v.SetDefault("visualizer.max_upload_bytes", defaultMaxUploadBytes)
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.orders", "orders")
	v.SetDefault("broker.topics.contact_messages", "contact-messages")
	v.SetDefault("broker.tls.ca_file", "")
	v.SetDefault("broker.tls.cert_file", "")
	v.SetDefault("broker.tls.key_file", "")
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"log_level":                   "LOG_LEVEL",
		"port":                        "PORT",
		"database_url":                "DATABASE_URL",
		"database_name":               "DATABASE_NAME",
		"broker.seed_brokers":         "BROKER_SEED_BROKERS",
		"broker.schema_registry_urls": "BROKER_SCHEMA_REGISTRY_URLS",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

func getConfigFilepath(args []string) string {
	cmdLine := pflag.NewFlagSet("decor", pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(args)
	env, ok := os.LookupEnv(configFileEnvName)
	if ok && env != "" {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func presence(s string) string {
	if s == "" {
		return "not set"
	}
	return "set"
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	Port=%d
	DatabaseURL=%s
	DatabaseName=%q
	MaxUploadBytes=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS: CA=%q Cert=%q
	Topics:
		Orders=%q
		ContactMessages=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.Port,
		presence(c.DatabaseURL),
		c.DatabaseName,
		c.Visualizer.MaxUploadBytes,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.CAFile,
		c.Broker.TLS.CertFile,
		c.Broker.Topics.Orders,
		c.Broker.Topics.ContactMessages,
	)
}
