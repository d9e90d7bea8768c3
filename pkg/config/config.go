package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Motores de render soportados.
const (
	EngineMaroto = "maroto"
	EngineRemote = "remote"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	JWT    JWTConfig
	Render RenderConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string // ruta al swagger.json servido en /docs (vacío = sin docs)
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

// JWTConfig verificación del token de sesión para /api/user.
// Si Secret está vacío el endpoint responde siempre 401.
type JWTConfig struct {
	Secret string
	Issuer string
}

// RenderConfig motor de PDF y plantilla del documento.
type RenderConfig struct {
	Engine              string // maroto | remote
	Timeout             time.Duration
	RemoteURL           string // base del servicio HTML→PDF (ej. http://gotenberg:3000)
	TemplatePath        string // plantilla HTML; vacío = plantilla embebida
	RecomputeLineTotals bool   // recalcula Quantity × UnitPrice antes de generar
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, RENDER_ENGINE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "invoice-builder"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "invoice-builder"),
		},
		Render: RenderConfig{
			Engine:              strings.ToLower(getString(v, "RENDER_ENGINE", EngineMaroto)),
			Timeout:             time.Duration(getInt(v, "RENDER_TIMEOUT_SECONDS", 30)) * time.Second,
			RemoteURL:           strings.TrimRight(getString(v, "RENDER_REMOTE_URL", ""), "/"),
			TemplatePath:        getString(v, "TEMPLATE_PATH", ""),
			RecomputeLineTotals: getBool(v, "RECOMPUTE_LINE_TOTALS", false),
		},
	}

	switch cfg.Render.Engine {
	case EngineMaroto:
	case EngineRemote:
		if cfg.Render.RemoteURL == "" {
			return nil, fmt.Errorf("config: RENDER_REMOTE_URL requerido con RENDER_ENGINE=%s", EngineRemote)
		}
	default:
		return nil, fmt.Errorf("config: RENDER_ENGINE desconocido %q", cfg.Render.Engine)
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
			n, err := strconv.Atoi(v.GetString(key))
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
