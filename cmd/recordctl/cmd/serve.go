/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/recordstore/pkg/api"
	"github.com/ssargent/recordstore/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the recordstore REST API server. Records are read and written under
/api/v1/records/{name}; Prometheus metrics are served at /metrics.

Examples:
  recordctl serve
  recordctl serve --port=9200 --api-key=mysecretkey --backend=pebble`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			settings.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
			settings.Server.APIKey = apiKey
		}

		if settings.Server.APIKey == "auto" {
			cmd.Println("Warning: no API key configured, authentication is disabled")
		}

		c := getContainer()
		backend, err := c.GetStorageFactory().OpenBackend(settings.Backend, settings.DataDir)
		if err != nil {
			return err
		}
		defer func() { _ = backend.Close() }()

		cmd.Printf("Serving %s records from %s\n", settings.Backend, settings.DataDir)
		return c.GetServerFactory().CreateServerStarter().StartServer(backend.Storage, serverConfig(settings, backend.Root))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().String("api-key", "", "API key for authentication (overrides config)")
}

// serverConfig maps settings onto the API server configuration. The
// placeholder key "auto" left by DefaultConfig disables authentication.
func serverConfig(settings *config.Config, root string) api.ServerConfig {
	apiKey := settings.Server.APIKey
	if apiKey == "auto" {
		apiKey = ""
	}
	return api.ServerConfig{
		Bind:           settings.Server.Bind,
		Port:           settings.Server.Port,
		APIKey:         apiKey,
		Root:           root,
		MaxPayloadSize: settings.MaxPayloadSize,
		Logger:         newLogger(settings.Logging.Level),
	}
}
