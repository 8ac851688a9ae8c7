// Package logging builds the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"

	"github.com/grafana/loki-client-go/loki"
	slogloki "github.com/samber/slog-loki/v3"
)

const serviceName = "pix-gateway"

// GetLogger returns a JSON logger on stdout, or a Loki-backed one when a
// remote URL is configured.
func GetLogger(lokiURL string) *slog.Logger {
	if lokiURL == "" {
		return localLogger()
	}
	return remoteLogger(lokiURL)
}

func localLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", serviceName)
}

func remoteLogger(url string) *slog.Logger {
	lokiConfig, _ := loki.NewDefaultConfig(url)
	client, _ := loki.New(lokiConfig)

	return slog.New(slogloki.Option{
		Level:  slog.LevelInfo,
		Client: client,
	}.NewLokiHandler()).With("service", serviceName)
}

// MaskSecret shortens a credential for log output. Keys are never logged in full.
func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:4] + "****"
}
