package cli

import (
	"io"
	"os"

	"timegate/internal/api"
	"timegate/internal/config"
)

// App bundles what every command handler needs: the API facade, the
// loaded configuration and the stream output goes to.
type App struct {
	api api.API
	cfg *config.Config
	out io.Writer
}

// NewApp creates the application with output on stdout.
func NewApp(apiInstance api.API, cfg *config.Config) *App {
	return &App{
		api: apiInstance,
		cfg: cfg,
		out: os.Stdout,
	}
}
