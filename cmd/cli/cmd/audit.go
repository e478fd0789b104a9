// Package cmd - audit command
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"esocial-informe/core/audit"
	"esocial-informe/core/output"
	"esocial-informe/core/scanner"
	"esocial-informe/core/session"
	"esocial-informe/internal/config"
	"esocial-informe/internal/errors"
	"esocial-informe/internal/logging"
)

var (
	auditYear    int
	auditSession string
	auditFormat  string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit [containers...]",
	Short: "Cross-reference events and list reconciliation pendencies",
	Long: `Extract the given containers and report the three pendency lists:
persons with payments but no computed pay (critical), competência coverage
gaps, and computed competências without a payment confirmation.

Containers are zip archives of eSocial XMLs, or directories of loose files.

Examples:
  informe audit --year 2025 eventos.zip
  informe audit --session sessao.hcl --format json eventos/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditYear, "year", "y", 0, "target calendar year (ano-calendário)")
	auditCmd.Flags().StringVarP(&auditSession, "session", "s", "", "session file; supplies the year when --year is absent")
	auditCmd.Flags().StringVarP(&auditFormat, "format", "f", "", "output format (cli, json)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	year := auditYear
	if auditSession != "" {
		sess, err := session.Load(auditSession)
		if err != nil {
			return err
		}
		if year == 0 {
			year = sess.Year
		}
	}
	if year < session.MinYear || year > session.MaxYear {
		return errors.Newf(errors.TypeInput, "year %d outside plausible range %d-%d (set --year or --session)", year, session.MinYear, session.MaxYear)
	}

	result, err := extractContainers(ctx, args)
	if err != nil {
		return err
	}

	report := audit.Run(result.Store, year)

	format := auditFormat
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}
	formatter, err := output.For(format)
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), report)
}

// extractContainers resolves sources for the argument paths and runs the
// extraction batch.
func extractContainers(ctx context.Context, paths []string) (*scanner.Result, error) {
	sources := make([]scanner.Source, 0, len(paths))
	for _, path := range paths {
		source, err := scanner.ForPath(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	batch := scanner.Batch{Workers: config.Get().Extract.Workers}
	result, err := batch.Run(ctx, sources)
	if err != nil {
		return nil, err
	}
	if result.Documents == 0 {
		logging.Warn("no XML documents found in the given containers")
	}
	return result, nil
}
