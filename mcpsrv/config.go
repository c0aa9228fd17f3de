package mcpsrv

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/acadjobs/config"
)

// Config holds the MCP front end settings. The jobs API itself is
// configured through the config package.
type Config struct {
	Port           string
	AllowedOrigins []string
	Stateless      bool
	RPS            float64
	Burst          int
	SessionTimeout time.Duration
	APIKey         string
}

// LoadConfig reads PORT and the ACADJOBS_MCP_* variables.
func LoadConfig() Config {
	cfg := Config{
		Port:           config.EnvString("PORT", "8080"),
		AllowedOrigins: config.EnvCSV("ACADJOBS_MCP_ALLOWED_ORIGINS"),
		Stateless:      config.EnvBool("ACADJOBS_MCP_STATELESS", false),
		RPS:            config.EnvFloat("ACADJOBS_MCP_RPS", 2),
		Burst:          config.EnvInt("ACADJOBS_MCP_BURST", 5),
		SessionTimeout: config.EnvDuration("ACADJOBS_MCP_SESSION_TIMEOUT", 15*time.Minute),
		APIKey:         config.EnvString("ACADJOBS_MCP_API_KEY", ""),
	}

	if cfg.RPS <= 0 {
		cfg.RPS = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	return cfg
}

func StreamableOptions(cfg Config) *mcp.StreamableHTTPOptions {
	return &mcp.StreamableHTTPOptions{
		Stateless:      cfg.Stateless,
		SessionTimeout: cfg.SessionTimeout,
	}
}
