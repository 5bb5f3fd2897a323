// Command storefront runs the jewelry storefront API and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shreejewels/storefront/config"
	"github.com/shreejewels/storefront/internal/app"
)

var (
	// Global flags
	configFile string
	workdir    string
	debug      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Shree Jewels storefront API server",
	Long: `storefront serves the public catalog, stories, rates and chat assistant,
plus the passphrase protected admin API used to curate them.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default storefront.yml, then /etc/storefront.yml)")
	rootCmd.PersistentFlags().StringVarP(&workdir, "workdir", "w", "", "override system.workdir")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "force debug logging")

	rootCmd.AddCommand(serveCmd, migrateCmd, hashPassphraseCmd)
}

// loadConfig reads the config file and applies command line overrides
func loadConfig() *config.AppConfig {
	cfg := config.LoadConfig(configFile)
	if workdir != "" {
		cfg.System.Workdir = workdir
	}
	if debug {
		cfg.System.Debug = true
		cfg.Logger.Mode = "development"
	}
	app.InitLogger(cfg)
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
