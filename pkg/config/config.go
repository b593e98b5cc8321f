package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	UI      UIConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del cliente de la API REST de inventario.
type APIConfig struct {
	BaseURL string // ej. http://localhost:5000/api
	Timeout time.Duration
}

// SessionConfig dónde se persiste la sesión (token, nombre, id de usuario).
type SessionConfig struct {
	DBPath string // archivo SQLite; ":memory:" para no persistir
}

// UIConfig parámetros de la capa de presentación derivada.
type UIConfig struct {
	PageSize      int
	ToastDuration time.Duration
	ScanDebounce  time.Duration
	LoginRedirect string
}

// HTTPConfig configuración del servidor BFF.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, PAGE_SIZE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:5000/api"), "/"),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Session: SessionConfig{
			DBPath: getString(v, "SESSION_DB_PATH", "session.db"),
		},
		UI: UIConfig{
			PageSize:      getInt(v, "PAGE_SIZE", 10),
			ToastDuration: time.Duration(getInt(v, "TOAST_DURATION_MS", 3000)) * time.Millisecond,
			ScanDebounce:  time.Duration(getInt(v, "SCAN_DEBOUNCE_MS", 2000)) * time.Millisecond,
			LoginRedirect: getString(v, "LOGIN_REDIRECT", "/login"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8081),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL vacío")
	}
	if cfg.UI.PageSize <= 0 {
		return nil, fmt.Errorf("config: PAGE_SIZE debe ser positivo (%d)", cfg.UI.PageSize)
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
