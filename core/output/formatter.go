// Package output renders audit reports for operator review, in a
// human-readable CLI form or machine-readable JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"esocial-informe/core/audit"
	"esocial-informe/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is human-readable text
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report
	Render(w io.Writer, report *audit.Report) error
}

// For returns the formatter for a format name.
func For(name string) (Formatter, error) {
	switch Format(name) {
	case FormatCLI, "":
		return cliFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q", name)
	}
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Render(w io.Writer, report *audit.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

type cliFormatter struct{}

func (cliFormatter) Format() Format { return FormatCLI }

func (cliFormatter) Render(w io.Writer, report *audit.Report) error {
	fmt.Fprintf(w, "Auditoria de Integridade - ano-calendário %d\n\n", report.Year)

	if len(report.MissingComputation) == 0 {
		fmt.Fprintln(w, "[OK] Todos os CPFs têm S-1200.")
	} else {
		fmt.Fprintf(w, "[CRÍTICO] %d CPF(s) sem S-1200 (excluídos da geração):\n", len(report.MissingComputation))
		for _, f := range report.MissingComputation {
			fmt.Fprintf(w, "  %s  %s - %s\n", f.Person, f.Name, f.Note)
		}
	}
	fmt.Fprintln(w)

	if len(report.CoverageGaps) == 0 {
		fmt.Fprintln(w, "[OK] Sequência de meses correta.")
	} else {
		fmt.Fprintf(w, "[AVISO] Continuidade: %d CPF(s) com meses faltantes:\n", len(report.CoverageGaps))
		for _, g := range report.CoverageGaps {
			missing := make([]string, len(g.Missing))
			for i, p := range g.Missing {
				missing[i] = string(p)
			}
			fmt.Fprintf(w, "  %s  %s\n", g.Person, g.Name)
			fmt.Fprintf(w, "    Meses faltantes: %s\n", strings.Join(missing, ", "))
			fmt.Fprintf(w, "    Admissão: %s | Demissão: %s | %s\n", g.Admission, g.Termination, g.Rule)
		}
	}
	fmt.Fprintln(w)

	if len(report.PendingPayments) == 0 {
		fmt.Fprintln(w, "[OK] Pagamentos conciliados.")
	} else {
		fmt.Fprintf(w, "[AVISO] %d cálculo(s) sem S-1210 - resolva com blocos correction no arquivo de sessão:\n", len(report.PendingPayments))
		for _, p := range report.PendingPayments {
			fmt.Fprintf(w, "  %s  %s  competência %s\n", p.Person, p.Name, p.Period)
		}
	}

	return nil
}
