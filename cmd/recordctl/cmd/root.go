/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/recordstore/pkg/config"
	"github.com/ssargent/recordstore/pkg/di"
)

var container *di.Container

// SetContainer injects the dependency container used by all commands
func SetContainer(c *di.Container) {
	container = c
}

func getContainer() *di.Container {
	if container == nil {
		container = di.NewContainer()
	}
	return container
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recordctl",
	Short: "recordctl - checksummed single-record files",
	Long: `recordctl reads, writes and inspects record files: one value per file,
guarded by a magic number and a CRC32 checksum so that torn or corrupted
files are detected instead of returned.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for records (overrides config)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: file or pebble (overrides config)")
}

// loadSettings resolves the configuration from the config file, falling
// back to defaults when no file exists, and applies flag overrides.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var settings *config.Config
	if configPath == "" && !config.ConfigExists(config.GetDefaultConfigPath()) {
		settings = config.DefaultConfig()
	} else {
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		settings.DataDir = dataDir
	}
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		settings.Backend = backend
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
