package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix          = "STASHLOG"
	minSecretKeyLength = 32
)

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type StoreConfig struct {
	Driver        string
	SQLitePath    string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

type LogConfig struct {
	Format string
	Level  string
}

type AuthConfig struct {
	SecretKey      string
	PassphraseHash string
	TokenTTL       time.Duration
}

// Enabled reports whether /api routes require a bearer token.
func (auth AuthConfig) Enabled() bool {
	return auth.SecretKey != ""
}

type EnrichmentConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	Timeout        time.Duration
	CacheTTL       time.Duration
	RequestsPerMin int
	Disabled       bool
}

type Config struct {
	Port       string
	Location   *time.Location
	Store      StoreConfig
	Log        LogConfig
	Auth       AuthConfig
	Enrichment EnrichmentConfig

	// Warnings collects values that were replaced by defaults.
	Warnings []string
}

// Load reads .env (when present), an optional stashlog.yaml and the
// environment, in increasing order of precedence. An explicit configFile
// must exist.
func Load(configFile string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return Config{}, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("stashlog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("tz", "UTC")

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "data/stashlog.db")
	v.SetDefault("store.mysql_dsn", "")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.redis_prefix", "stashlog")

	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")

	v.SetDefault("auth.secret_key", "")
	v.SetDefault("auth.passphrase_hash", "")
	v.SetDefault("auth.token_ttl", "720h")

	v.SetDefault("enrichment.api_key", "")
	v.SetDefault("enrichment.model", "gemini-2.5-flash")
	v.SetDefault("enrichment.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("enrichment.timeout", "20s")
	v.SetDefault("enrichment.cache_ttl", "24h")
	v.SetDefault("enrichment.requests_per_minute", 10)
	v.SetDefault("enrichment.disabled", false)
}

// bindEnv keeps the short variable names used by the container image working
// next to the prefixed ones.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"port":                           {"PORT"},
		"tz":                             {"TZ"},
		"store.driver":                   {"STORE_DRIVER"},
		"store.sqlite_path":              {"DB_PATH"},
		"store.mysql_dsn":                {"MYSQL_DSN"},
		"store.redis_addr":               {"REDIS_ADDR"},
		"store.redis_password":           {"REDIS_PASSWORD"},
		"store.redis_db":                 {"REDIS_DB"},
		"store.redis_prefix":             {"REDIS_PREFIX"},
		"log.format":                     {"LOG_FORMAT"},
		"log.level":                      {"LOG_LEVEL"},
		"auth.secret_key":                {"SECRET_KEY"},
		"auth.passphrase_hash":           {"ACCESS_PASSPHRASE_HASH"},
		"auth.token_ttl":                 {"TOKEN_TTL"},
		"enrichment.api_key":             {"GEMINI_API_KEY", "API_KEY"},
		"enrichment.model":               {"GEMINI_MODEL"},
		"enrichment.base_url":            {"GEMINI_BASE_URL"},
		"enrichment.timeout":             {"ENRICHMENT_TIMEOUT"},
		"enrichment.cache_ttl":           {"ENRICHMENT_CACHE_TTL"},
		"enrichment.requests_per_minute": {"ENRICHMENT_REQUESTS_PER_MINUTE"},
		"enrichment.disabled":            {"ENRICHMENT_DISABLED"},
	}

	for key, names := range bindings {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		args := append([]string{key, prefixed}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	port, err := resolvePort(v.GetString("port"))
	if err != nil {
		return Config{}, err
	}
	cfg.Port = port

	location, warning := resolveLocation(v.GetString("tz"))
	cfg.Location = location
	cfg.addWarning(warning)

	cfg.Store = StoreConfig{
		Driver:        strings.ToLower(strings.TrimSpace(v.GetString("store.driver"))),
		SQLitePath:    v.GetString("store.sqlite_path"),
		MySQLDSN:      v.GetString("store.mysql_dsn"),
		RedisAddr:     v.GetString("store.redis_addr"),
		RedisPassword: v.GetString("store.redis_password"),
		RedisDB:       v.GetInt("store.redis_db"),
		RedisPrefix:   v.GetString("store.redis_prefix"),
	}

	cfg.Log = LogConfig{
		Format: v.GetString("log.format"),
		Level:  v.GetString("log.level"),
	}

	secretKey, err := resolveSecretKey(v.GetString("auth.secret_key"))
	if err != nil {
		return Config{}, err
	}
	cfg.Auth = AuthConfig{
		SecretKey:      secretKey,
		PassphraseHash: strings.TrimSpace(v.GetString("auth.passphrase_hash")),
		TokenTTL:       cfg.duration(v, "auth.token_ttl", 30*24*time.Hour),
	}

	requestsPerMin := v.GetInt("enrichment.requests_per_minute")
	if requestsPerMin <= 0 {
		cfg.addWarning(fmt.Sprintf("enrichment.requests_per_minute %d is not positive, using 10", requestsPerMin))
		requestsPerMin = 10
	}
	cfg.Enrichment = EnrichmentConfig{
		APIKey:         strings.TrimSpace(v.GetString("enrichment.api_key")),
		Model:          strings.TrimSpace(v.GetString("enrichment.model")),
		BaseURL:        strings.TrimRight(strings.TrimSpace(v.GetString("enrichment.base_url")), "/"),
		Timeout:        cfg.duration(v, "enrichment.timeout", 20*time.Second),
		CacheTTL:       cfg.duration(v, "enrichment.cache_ttl", 24*time.Hour),
		RequestsPerMin: requestsPerMin,
		Disabled:       v.GetBool("enrichment.disabled"),
	}

	return cfg, nil
}

func (cfg *Config) addWarning(warning string) {
	if warning != "" {
		cfg.Warnings = append(cfg.Warnings, warning)
	}
}

func (cfg *Config) duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		cfg.addWarning(fmt.Sprintf("invalid %s %q, using %s", key, raw, fallback))
		return fallback
	}
	return parsed
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return port, nil
}

func resolveLocation(name string) (*time.Location, string) {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC, fmt.Sprintf("invalid TZ %q, falling back to UTC", name)
	}
	return location, ""
}

// resolveSecretKey allows an empty key (open API) but rejects weak ones.
func resolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", nil
	}
	if _, insecure := insecureSecretPlaceholders[secret]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}
