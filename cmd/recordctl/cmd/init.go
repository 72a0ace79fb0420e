/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/recordstore/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file and data directory",
	Long: `Create a configuration file with a generated API key and instance id,
and the data directory it points at.

Examples:
	  recordctl init
	  recordctl init --config=./recordstore.yaml --data-dir=./data --backend=pebble`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		backend, _ := cmd.Flags().GetString("backend")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		settings, created, err := initializeConfig(configPath, dataDir, backend, force)
		if err != nil {
			return err
		}
		if !created {
			cmd.Printf("Configuration already exists at %s. Use --force to regenerate.\n", configPath)
			return nil
		}

		cmd.Printf("Configuration written to %s\n", configPath)
		cmd.Printf("Data directory: %s (%s backend)\n", settings.DataDir, settings.Backend)
		cmd.Printf("Instance id: %s\n", settings.InstanceID)
		cmd.Printf("API key: %s\n", settings.Server.APIKey)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  recordctl serve --config=%s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}

// initializeConfig bootstraps a configuration unless one exists and force
// is false. It reports whether a new file was written.
func initializeConfig(configPath, dataDir, backend string, force bool) (*config.Config, bool, error) {
	if config.ConfigExists(configPath) && !force {
		return nil, false, nil
	}

	settings, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return nil, false, err
	}

	if backend != "" && backend != settings.Backend {
		settings.Backend = backend
		if err := settings.Validate(); err != nil {
			return nil, false, err
		}
		if err := config.SaveConfig(settings, configPath); err != nil {
			return nil, false, err
		}
	}

	if err := os.MkdirAll(settings.DataDir, 0750); err != nil {
		return nil, false, fmt.Errorf("failed to create data directory: %w", err)
	}
	return settings, true, nil
}
