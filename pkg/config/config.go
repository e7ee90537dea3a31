package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Uploads       UploadsConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CATALOG_APP_ENV" required:"true"`
	Port         string `envconfig:"CATALOG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CATALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CATALOG_DB_DSN"`

	LegacyHost     string `envconfig:"CATALOG_DB_HOST"`
	LegacyPort     int    `envconfig:"CATALOG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CATALOG_DB_USER"`
	LegacyPassword string `envconfig:"CATALOG_DB_PASSWORD"`
	LegacyName     string `envconfig:"CATALOG_DB_NAME"`
	LegacySSLMode  string `envconfig:"CATALOG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CATALOG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CATALOG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	ConnectAttempts int           `envconfig:"CATALOG_DB_CONNECT_ATTEMPTS" default:"10"`
	ConnectDelay    time.Duration `envconfig:"CATALOG_DB_CONNECT_DELAY" default:"2s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CATALOG_REDIS_URL"`
	PoolSize     int           `envconfig:"CATALOG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CATALOG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CATALOG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CATALOG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CATALOG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CATALOG_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CATALOG_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CATALOG_JWT_EXPIRATION_MINUTES" default:"11520"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CATALOG_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CATALOG_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CATALOG_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CATALOG_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CATALOG_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"CATALOG_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"CATALOG_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"CATALOG_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type UploadsConfig struct {
	Dir               string `envconfig:"CATALOG_UPLOAD_DIR" default:"uploads"`
	MaxFileSizeBytes  int64  `envconfig:"CATALOG_UPLOAD_MAX_FILE_SIZE" default:"5242880"`
	AllowedExtensions string `envconfig:"CATALOG_UPLOAD_ALLOWED_EXTENSIONS" default:".jpg,.jpeg,.png,.gif,.webp"`
	URLPrefix         string `envconfig:"CATALOG_UPLOAD_URL_PREFIX" default:"/uploads"`
}

// Extensions returns the normalized allowed-extension set.
func (u UploadsConfig) Extensions() []string {
	parts := strings.Split(u.AllowedExtensions, ",")
	exts := make([]string, 0, len(parts))
	for _, part := range parts {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

type CORSConfig struct {
	AllowedOrigins string `envconfig:"CATALOG_CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
}

// Origins returns the configured origin list, trimmed.
func (c CORSConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CATALOG_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
