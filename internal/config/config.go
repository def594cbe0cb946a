package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-player-search/internal/platform/logging"
)

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	CORSAllowedOrigins       []string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	LogLevel                 logging.Level
	NBAAPIBaseURL            string
	NBAAPITimeout            time.Duration
	NBAAPIMaxBodyBytes       int
	NBAAPICircuitEnabled     bool
	NBAAPICircuitFailures    int
	NBAAPICircuitOpenTimeout time.Duration
	NBAAPICircuitHalfOpenMax int
	ImageDecoderWorkers      int
	SearchLatestOnly         bool
	DisplayBackend           string
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int
	RedisKey                 string
	PprofEnabled             bool
	PprofAddr                string
	UptraceEnabled           bool
	UptraceDSN               string
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeBasicAuthUser   string
	PyroscopeBasicAuthPass   string
	PyroscopeUploadRate      time.Duration
}

const (
	DisplayMemory = "memory"
	DisplayRedis  = "redis"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse APP_READ_TIMEOUT")
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse APP_WRITE_TIMEOUT")
	}

	nbaTimeout, err := time.ParseDuration(getEnv("NBA_API_TIMEOUT", "0s"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse NBA_API_TIMEOUT")
	}
	if nbaTimeout < 0 {
		return Config{}, crerr.New("NBA_API_TIMEOUT must be >= 0")
	}
	nbaMaxBody, err := getEnvAsInt("NBA_API_MAX_BODY_BYTES", 8<<20)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse NBA_API_MAX_BODY_BYTES")
	}
	if nbaMaxBody <= 0 {
		return Config{}, crerr.New("NBA_API_MAX_BODY_BYTES must be > 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("NBA_API_CIRCUIT_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse NBA_API_CIRCUIT_ENABLED")
	}
	circuitFailures, err := getEnvAsInt("NBA_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse NBA_API_CIRCUIT_FAILURE_COUNT")
	}
	if circuitFailures < 1 {
		return Config{}, crerr.New("NBA_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("NBA_API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse NBA_API_CIRCUIT_OPEN_TIMEOUT")
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, crerr.New("NBA_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMax, err := getEnvAsInt("NBA_API_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse NBA_API_CIRCUIT_HALF_OPEN_MAX_REQ")
	}
	if circuitHalfOpenMax < 1 {
		return Config{}, crerr.New("NBA_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	decoderWorkers, err := getEnvAsInt("IMAGE_DECODER_WORKERS", 4)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse IMAGE_DECODER_WORKERS")
	}
	if decoderWorkers < 1 {
		return Config{}, crerr.New("IMAGE_DECODER_WORKERS must be >= 1")
	}

	latestOnly, err := strconv.ParseBool(getEnv("SEARCH_LATEST_ONLY", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse SEARCH_LATEST_ONLY")
	}

	displayBackend := strings.ToLower(strings.TrimSpace(getEnv("DISPLAY_BACKEND", DisplayMemory)))
	if displayBackend != DisplayMemory && displayBackend != DisplayRedis {
		return Config{}, crerr.Newf("invalid DISPLAY_BACKEND %q: valid values are %s, %s", displayBackend, DisplayMemory, DisplayRedis)
	}
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse REDIS_DB")
	}
	if redisDB < 0 {
		return Config{}, crerr.New("REDIS_DB must be >= 0")
	}
	redisAddr := strings.TrimSpace(getEnv("REDIS_ADDR", "localhost:6379"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PPROF_ENABLED")
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse UPTRACE_ENABLED")
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, crerr.New("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PYROSCOPE_ENABLED")
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, crerr.New("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PYROSCOPE_UPLOAD_RATE")
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, crerr.New("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                   appEnv,
		ServiceName:              getEnv("APP_SERVICE_NAME", "nba-player-search"),
		ServiceVersion:           getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                 getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:       splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:              readTimeout,
		WriteTimeout:             writeTimeout,
		LogLevel:                 logging.ParseLevel(strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_LEVEL", "info")))),
		NBAAPIBaseURL:            strings.TrimSpace(getEnv("NBA_API_BASE_URL", "https://nba-players.herokuapp.com")),
		NBAAPITimeout:            nbaTimeout,
		NBAAPIMaxBodyBytes:       nbaMaxBody,
		NBAAPICircuitEnabled:     circuitEnabled,
		NBAAPICircuitFailures:    circuitFailures,
		NBAAPICircuitOpenTimeout: circuitOpenTimeout,
		NBAAPICircuitHalfOpenMax: circuitHalfOpenMax,
		ImageDecoderWorkers:      decoderWorkers,
		SearchLatestOnly:         latestOnly,
		DisplayBackend:           displayBackend,
		RedisAddr:                redisAddr,
		RedisPassword:            getEnv("REDIS_PASSWORD", ""),
		RedisDB:                  redisDB,
		RedisKey:                 strings.TrimSpace(getEnv("REDIS_KEY", "nba-player-search:panel")),
		PprofEnabled:             pprofEnabled,
		PprofAddr:                pprofAddr,
		UptraceEnabled:           uptraceEnabled,
		UptraceDSN:               uptraceDSN,
		PyroscopeEnabled:         pyroscopeEnabled,
		PyroscopeServerAddress:   pyroscopeServerAddress,
		PyroscopeAuthToken:       strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPass:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:      pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if cfg.NBAAPIBaseURL == "" {
		return Config{}, crerr.New("NBA_API_BASE_URL cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, crerr.New("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.DisplayBackend == DisplayRedis && cfg.RedisAddr == "" {
		return Config{}, crerr.New("REDIS_ADDR is required when DISPLAY_BACKEND=redis")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, crerr.New("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", crerr.Newf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
