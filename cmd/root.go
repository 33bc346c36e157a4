// Package cmd implements the comicgen CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nini1972/comicbook-creator/config"
)

var (
	cfgFile       string
	envFile       string
	verbose       bool
	themeOverride string
	serverHost    string
	serverPort    int
	renderStyle   string

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "comicgen",
	Short: "Turn a topic into a comic strip",
	Long: "comicgen streams a comic generation run from the comic server, showing each crew " +
		"step as it happens and rendering the finished comic in the terminal.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "comicgen.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "env file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "TUI color theme: dark, light, or auto")
	rootCmd.PersistentFlags().StringVar(&serverHost, "host", "", "host the comic server is reached through (localhost maps to 127.0.0.1)")
	rootCmd.PersistentFlags().IntVar(&serverPort, "port", 0, "comic server port")
	rootCmd.PersistentFlags().StringVar(&renderStyle, "style", "", "markdown style: auto, dark, light, notty, ascii")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(endpointCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("comicgen %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads comicgen.yaml and the env file, then applies flag
// overrides. An explicitly passed --config must exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		Path:     cfgFile,
		Required: rootCmd.PersistentFlags().Changed("config"),
		EnvFile:  envFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if renderStyle != "" {
		cfg.Render.Style = renderStyle
	}
	if themeOverride != "" {
		cfg.Theme = themeOverride
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
