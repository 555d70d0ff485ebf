package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by the service.
	EnvPrefix = "BALLON"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "BALLON_APP_ENV"
	EnvDBDSN  = "BALLON_DB_DSN"
	EnvDBHost = "BALLON_DB_HOST"
	EnvDBUser = "BALLON_DB_USER"
	EnvDBName = "BALLON_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Providers     ProvidersConfig
	Payment       PaymentConfig
	SMS           SMSConfig
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
	Env          string `envconfig:"BALLON_APP_ENV" required:"true"`
	Port         string `envconfig:"BALLON_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BALLON_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BALLON_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BALLON_DB_DSN"`
	Driver string `envconfig:"BALLON_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BALLON_DB_HOST"`
	LegacyPort     int    `envconfig:"BALLON_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BALLON_DB_USER"`
	LegacyPassword string `envconfig:"BALLON_DB_PASSWORD"`
	LegacyName     string `envconfig:"BALLON_DB_NAME"`
	LegacySSLMode  string `envconfig:"BALLON_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BALLON_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BALLON_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BALLON_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BALLON_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BALLON_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BALLON_REDIS_ADDR"`
	Password     string        `envconfig:"BALLON_REDIS_PASSWORD"`
	DB           int           `envconfig:"BALLON_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BALLON_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BALLON_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BALLON_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BALLON_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BALLON_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BALLON_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BALLON_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"BALLON_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"BALLON_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BALLON_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BALLON_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BALLON_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BALLON_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BALLON_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"BALLON_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"BALLON_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"BALLON_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BALLON_AUTO_MIGRATE" default:"false"`
}

// ProvidersConfig carries the OAuth client material for delegated logins.
type ProvidersConfig struct {
	GoogleClientID       string `envconfig:"BALLON_GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `envconfig:"BALLON_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL    string `envconfig:"BALLON_GOOGLE_REDIRECT_URL"`
	FacebookClientID     string `envconfig:"BALLON_FACEBOOK_APP_ID"`
	FacebookClientSecret string `envconfig:"BALLON_FACEBOOK_APP_SECRET"`
	FacebookRedirectURL  string `envconfig:"BALLON_FACEBOOK_REDIRECT_URL"`
}

type PaymentConfig struct {
	Mode string `envconfig:"BALLON_PAYMENT_MODE" default:"simulated"`
}

// Simulated reports whether checkout settles through the built-in
// always-success gateway.
func (p PaymentConfig) Simulated() bool {
	return !strings.EqualFold(strings.TrimSpace(p.Mode), "live")
}

type SMSConfig struct {
	SenderID string `envconfig:"BALLON_SMS_SENDER_ID" default:"BALLONSURPRISE"`
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
