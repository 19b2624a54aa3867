package config

import (
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"product-gateway/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppName string

	RedisHost string
	RedisPort string
	RedisDB   int

	GrpcHost           string
	GrpcPort           string
	GrpcCertFile       string
	GrpcKeyFile        string
	GrpcClientCertFile string
	GrpcUseTLS         bool

	SSLCertFile string
	SSLKeyFile  string

	RemoteLogHttpURI       string
	RemoteTraceRpcURI      string
	RemoteProfilingHttpURI string
}

// SafeConfig is the loggable view of Config (no TLS key material paths).
type SafeConfig struct {
	AppPort                string `json:"app_port"`
	AppName                string `json:"app_name"`
	RedisHost              string `json:"redis_host"`
	RedisPort              string `json:"redis_port"`
	RedisDB                int    `json:"redis_db"`
	GrpcHost               string `json:"grpc_host"`
	GrpcPort               string `json:"grpc_port"`
	GrpcUseTLS             bool   `json:"grpc_use_tls"`
	RemoteLogHttpURI       string `json:"remote_log_http_uri"`
	RemoteTraceRpcURI      string `json:"remote_trace_rpc_uri"`
	RemoteProfilingHttpURI string `json:"remote_profiling_http_uri"`
}

func toSnake(s string) string {
	var out strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && s[i-1] != '_' {
				out.WriteRune('_')
			}
			out.WriteRune(unicode.ToLower(r))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// StructAttrs("data", cfg) ➜ []slog.Attr{ slog.String("data.app_port", "8000"), ... }
func StructAttrs(prefix string, s any) []slog.Attr {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	attrs := make([]slog.Attr, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := prefix + "." + jsonKey(f)

		switch v.Field(i).Kind() {
		case reflect.String:
			attrs = append(attrs, slog.String(key, v.Field(i).String()))
		case reflect.Int, reflect.Int64, reflect.Int32:
			attrs = append(attrs, slog.Int64(key, v.Field(i).Int()))
		case reflect.Bool:
			attrs = append(attrs, slog.Bool(key, v.Field(i).Bool()))
		default:
			attrs = append(attrs, slog.Any(key, v.Field(i).Interface()))
		}
	}
	return attrs
}

// jsonKey prefers the `json:"..."` tag, falling back to camelCase->snake.
func jsonKey(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		return strings.Split(tag, ",")[0]
	}
	return toSnake(f.Name)
}

func (c *Config) ToSafeConfig() SafeConfig {
	return SafeConfig{
		AppPort:                c.AppPort,
		AppName:                c.AppName,
		RedisHost:              c.RedisHost,
		RedisPort:              c.RedisPort,
		RedisDB:                c.RedisDB,
		GrpcHost:               c.GrpcHost,
		GrpcPort:               c.GrpcPort,
		GrpcUseTLS:             c.GrpcUseTLS,
		RemoteLogHttpURI:       c.RemoteLogHttpURI,
		RemoteTraceRpcURI:      c.RemoteTraceRpcURI,
		RemoteProfilingHttpURI: c.RemoteProfilingHttpURI,
	}
}

// RedisAddr is the primary store endpoint.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// GrpcTarget is the backend endpoint the gateway dials.
func (c *Config) GrpcTarget() string {
	return c.GrpcHost + ":" + c.GrpcPort
}

var log = logger.Instance()
var (
	configInstance *Config
	configOnce     sync.Once
)

func getenv(varName, def string) string {
	if v := os.Getenv(varName); v != "" {
		return v
	}
	return def
}

func setInt(varName string, def int) int {
	val := os.Getenv(varName)
	if val == "" {
		return def
	}

	num, err := strconv.Atoi(val)
	if err != nil {
		log.Error("Invalid integer env var, using default",
			slog.String("var", varName),
			slog.Int("default", def),
		)
		return def
	}
	return num
}

func setBool(varName string) bool {
	return strings.EqualFold(os.Getenv(varName), "true")
}

func Instance() *Config {
	configOnce.Do(func() {

		// Load .env file (optional)
		if err := godotenv.Load(); err != nil {
			log.Warn("No .env file found, using system environment variables")
		}

		configInstance = &Config{
			AppPort:                os.Getenv("APP_PORT"),
			AppName:                os.Getenv("APP_NAME"),
			RedisHost:              getenv("REDIS_HOST", "localhost"),
			RedisPort:              getenv("REDIS_PORT", "6379"),
			RedisDB:                setInt("REDIS_DB", 0),
			GrpcHost:               getenv("GRPC_HOST", "localhost"),
			GrpcPort:               getenv("GRPC_PORT", "50051"),
			GrpcCertFile:           os.Getenv("GRPC_CERT_FILE"),
			GrpcKeyFile:            os.Getenv("GRPC_KEY_FILE"),
			GrpcClientCertFile:     os.Getenv("GRPC_CLIENT_CERT_FILE"),
			GrpcUseTLS:             setBool("GRPC_USE_TLS"),
			SSLCertFile:            os.Getenv("SSL_CERT_FILE"),
			SSLKeyFile:             os.Getenv("SSL_KEY_FILE"),
			RemoteLogHttpURI:       os.Getenv("REMOTE_LOG_HTTP_URI"),
			RemoteTraceRpcURI:      os.Getenv("REMOTE_TRACE_RPC_URI"),
			RemoteProfilingHttpURI: os.Getenv("REMOTE_PROFILING_HTTP_URI"),
		}

		// Optional but recommended
		if configInstance.RemoteLogHttpURI == "" {
			log.Warn("Missing REMOTE_LOG_HTTP_URI will skip sending log")
		}
		if configInstance.RemoteTraceRpcURI == "" {
			log.Warn("Missing REMOTE_TRACE_RPC_URI will skip sending trace")
		}
		if configInstance.RemoteProfilingHttpURI == "" {
			log.Warn("Missing REMOTE_PROFILING_HTTP_URI will skip sending profiling")
		}

		// Validate required env
		var missing []string
		if configInstance.AppPort == "" {
			missing = append(missing, "APP_PORT")
		}
		if configInstance.AppName == "" {
			missing = append(missing, "APP_NAME")
		}

		if len(missing) > 0 {
			log.Error("Missing required environment variables", slog.Any("missing", missing))
			os.Exit(1)
		}

		attrs := StructAttrs("data", configInstance.ToSafeConfig())
		anyAttrs := make([]any, len(attrs))
		for i, a := range attrs {
			anyAttrs[i] = a
		}
		log.Info("Configuration loaded successfully", anyAttrs...)
	})

	return configInstance
}
