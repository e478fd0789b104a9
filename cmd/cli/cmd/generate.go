// Package cmd - generate command
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"esocial-informe/core/aggregate"
	"esocial-informe/core/audit"
	"esocial-informe/core/ledger"
	"esocial-informe/core/output"
	"esocial-informe/core/session"
	"esocial-informe/core/types"
	"esocial-informe/internal/errors"
	"esocial-informe/internal/render/pdf"
	"esocial-informe/internal/render/sheet"
)

var (
	generateSession string
	generateOut     string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [containers...]",
	Short: "Generate the statement PDFs and the summary spreadsheet",
	Long: `Run the full pipeline: extract the containers, audit the facts,
apply the session's pay-code mapping and manual corrections, aggregate
per-person totals, and write the PDF bundle plus the spreadsheet.

Persons flagged as missing computed pay are excluded from generation;
advisory pendencies are printed but do not block.

Examples:
  informe generate --session sessao.hcl eventos.zip
  informe generate --session sessao.hcl --out ./saida eventos-1.zip eventos-2.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateSession, "session", "s", "", "session file (required)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", ".", "output directory")
	_ = generateCmd.MarkFlagRequired("session")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess, err := session.Load(generateSession)
	if err != nil {
		return err
	}
	if err := sess.RequireGrossMapping(); err != nil {
		return err
	}

	result, err := extractContainers(ctx, args)
	if err != nil {
		return err
	}
	for person, name := range sess.Names {
		result.Store.SetName(person, name)
	}

	report := audit.Run(result.Store, sess.Year)
	formatter, _ := output.For(string(output.FormatCLI))
	if err := formatter.Render(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())

	led := ledger.New()
	for _, pending := range report.PendingPayments {
		led.Seed(pending.Person, pending.Period)
	}
	for _, correction := range sess.Corrections {
		if correction.Active() {
			led.Resolve(correction.Person, correction.Period, correction.PaymentDate, correction.WithheldTax)
		}
	}

	engine := aggregate.New(result.Store, led, sess.Mapping)
	statements := engine.Statements()
	if len(statements) == 0 {
		return errors.Input("no person with computed pay; nothing to generate")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeOutputs(sess, statements); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Gerados %d informe(s) em %s\n", len(statements), generateOut)
	return nil
}

func writeOutputs(sess *session.Session, statements []types.Statement) error {
	if err := os.MkdirAll(generateOut, 0755); err != nil {
		return errors.Wrap(errors.TypeRender, "creating output directory", err)
	}

	renderer := &pdf.Renderer{
		Year:         sess.Year,
		EmployerName: sess.Employer.Name,
		EmployerCNPJ: sess.Employer.CNPJ,
	}

	bundlePath := filepath.Join(generateOut, fmt.Sprintf("Informes_%d.zip", sess.Year))
	bundle, err := os.Create(bundlePath)
	if err != nil {
		return errors.Wrap(errors.TypeRender, "creating pdf bundle", err)
	}
	if err := renderer.WriteBundle(bundle, statements); err != nil {
		bundle.Close()
		return err
	}
	if err := bundle.Close(); err != nil {
		return errors.Wrap(errors.TypeRender, "closing pdf bundle", err)
	}

	sheetPath := filepath.Join(generateOut, "Relatorio_Conferencia.xlsx")
	workbook, err := os.Create(sheetPath)
	if err != nil {
		return errors.Wrap(errors.TypeRender, "creating spreadsheet", err)
	}
	if err := sheet.Write(workbook, statements); err != nil {
		workbook.Close()
		return err
	}
	return workbook.Close()
}
