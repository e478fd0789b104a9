// Package cmd provides the CLI commands for informe.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"esocial-informe/internal/config"
	"esocial-informe/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "informe",
	Short: "Gera informes de rendimentos a partir de eventos eSocial",
	Long: `informe reconciles eSocial S-series payroll events and generates the
annual income statements (comprovante de rendimentos).

It ingests zip archives of event XMLs (S-1200, S-1210, S-2200, S-2299),
audits computed pay against recorded payments, applies the operator's
pay-code mapping and manual corrections, and renders per-employee PDFs
plus a summary spreadsheet.

Examples:
  informe audit --year 2025 eventos.zip
  informe generate --session sessao.hcl --out ./informes eventos-jan.zip eventos-fev.zip`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.informe.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("informe version 0.1.0")
	},
}
