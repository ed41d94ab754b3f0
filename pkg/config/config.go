package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverCSV      = "csv"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	Catalog CatalogConfig
	Log     LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selección del adaptador de almacenamiento.
// sqlite: archivo local (default, despliegue de un solo usuario).
// postgres: servidor compartido. csv: hojas en archivos compatibles con la
// planilla original (master.csv / log.csv dentro de CSVDir).
type StorageConfig struct {
	Driver     string
	SQLitePath string
	CSVDir     string
}

// DBConfig configuración de PostgreSQL. Si DatabaseURL no está vacío se usa
// como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido,
// si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string con URL encoding para caracteres
// especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// CatalogConfig valores de prellenado para altas de catálogo. Son defaults
// de captura, no requisitos semánticos: el caller puede mandar otros.
type CatalogConfig struct {
	DefaultBulkUnitLabel    string
	DefaultBulkCapacity     int
	DefaultConversionFactor float64
}

// LogConfig configuración del logger.
type LogConfig struct {
	Level string // trace, debug, info, warn, error
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde un archivo .env en el directorio de trabajo). Las env vars tienen
// prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "rutastock"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			Driver:     getString(v, "STORAGE_DRIVER", DriverSQLite),
			SQLitePath: getString(v, "SQLITE_PATH", "./rutastock.db"),
			CSVDir:     getString(v, "CSV_DIR", "./data"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "rutastock"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			DefaultBulkUnitLabel:    getString(v, "CATALOG_DEFAULT_BULK_UNIT", "unidad"),
			DefaultBulkCapacity:     getInt(v, "CATALOG_DEFAULT_BULK_CAPACITY", 120),
			DefaultConversionFactor: getFloat(v, "CATALOG_DEFAULT_CONVERSION_FACTOR", 6.7),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	switch cfg.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverCSV:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			return s
		}
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		if n := v.GetInt(key); n != 0 {
			return n
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if f := v.GetFloat64(key); f != 0 {
			return f
		}
	}
	return def
}
