// Package pdf renders the per-person annual income statement in the
// Receita Federal comprovante layout: a fixed header, boxed identification
// fields, and numbered value tables.
package pdf

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"esocial-informe/core/types"
	"esocial-informe/internal/brl"
	"esocial-informe/internal/errors"
)

// Renderer writes statements for one employer and calendar year.
type Renderer struct {
	// Year is the ano-calendário printed on the form
	Year int

	// EmployerName is the paying source display name
	EmployerName string

	// EmployerCNPJ is the paying source tax id
	EmployerCNPJ string
}

// Render writes one statement PDF.
func (r *Renderer) Render(w io.Writer, st types.Statement) error {
	doc := newDocument(r.Year)
	doc.page(r, st)
	if err := doc.pdf.Output(w); err != nil {
		return errors.Render("writing statement pdf", err)
	}
	return nil
}

// WriteBundle writes a zip archive with one PDF per statement.
func (r *Renderer) WriteBundle(w io.Writer, statements []types.Statement) error {
	archive := zip.NewWriter(w)
	for _, st := range statements {
		entry, err := archive.Create(fmt.Sprintf("Informe_%s.pdf", safeName(st.Name)))
		if err != nil {
			return errors.Render("creating bundle entry", err)
		}
		if err := r.Render(entry, st); err != nil {
			return err
		}
	}
	if err := archive.Close(); err != nil {
		return errors.Render("closing bundle", err)
	}
	return nil
}

func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
}

// document wraps the fpdf state for one statement page.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(year int) *document {
	p := fpdf.New("P", "mm", "A4", "")
	d := &document{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
	p.SetAutoPageBreak(true, 10)
	p.SetLineWidth(0.2)

	p.SetHeaderFunc(func() {
		p.SetFont("Arial", "B", 8)
		d.cell(0, 4, "MINISTÉRIO DA FAZENDA", "", 1, "L")
		d.cell(0, 4, "SECRETARIA DA RECEITA FEDERAL DO BRASIL", "", 1, "L")
		p.Ln(2)
		p.SetFont("Arial", "B", 12)
		d.cell(0, 5, "COMPROVANTE DE RENDIMENTOS PAGOS E DE", "", 1, "C")
		d.cell(0, 5, "IMPOSTO SOBRE A RENDA RETIDO NA FONTE", "", 1, "C")
		p.Ln(2)
		p.SetFont("Arial", "B", 9)
		d.cell(0, 5, fmt.Sprintf("ANO-CALENDÁRIO: %d   |   EXERCÍCIO: %d", year, year+1), "", 1, "R")
		p.Ln(4)
		p.SetFont("Arial", "", 6)
		p.MultiCell(0, 3, d.tr("Verifique as condições e o prazo para a apresentação da Declaração do Imposto sobre a Renda da Pessoa Física..."), "", "C", false)
		p.Ln(3)
	})
	return d
}

func (d *document) cell(w, h float64, txt, border string, ln int, align string) {
	d.pdf.CellFormat(w, h, d.tr(txt), border, ln, align, false, 0, "")
}

// box draws a labeled field box, advancing right, or to the next row when
// newline is set.
func (d *document) box(label, value string, w, h float64, newline bool) {
	p := d.pdf
	x, y := p.GetXY()
	p.Rect(x, y, w, h, "D")
	p.SetFont("Arial", "", 6)
	p.SetXY(x+1, y+1)
	d.cell(w-2, 3, label, "", 0, "L")
	p.SetFont("Arial", "B", 8)
	if float64(len(value)) > w/2 {
		p.SetFont("Arial", "B", 7)
	}
	p.SetXY(x+1, y+5)
	d.cell(w-2, 4, value, "", 0, "L")
	if newline {
		left, _, _, _ := p.GetMargins()
		p.SetXY(left, y+h)
	} else {
		p.SetXY(x+w, y)
	}
}

// row writes one label/value table line.
func (d *document) row(label, value string) {
	d.pdf.SetFont("Arial", "", 7)
	d.cell(160, 5, label, "1", 0, "L")
	d.pdf.SetFont("Arial", "B", 8)
	d.cell(0, 5, value, "1", 1, "R")
}

// section writes a shaded numbered section title.
func (d *document) section(number, title string) {
	d.pdf.SetFillColor(230, 230, 230)
	d.pdf.SetFont("Arial", "B", 8)
	d.pdf.CellFormat(0, 6, d.tr(fmt.Sprintf("%s. %s", number, title)), "1", 1, "L", true, 0, "")
}

func (d *document) page(r *Renderer, st types.Statement) {
	p := d.pdf
	p.AddPage()

	d.section("1", "FONTE PAGADORA PESSOA JURÍDICA OU PESSOA FÍSICA")
	d.box("CNPJ/CPF", r.EmployerCNPJ, 50, 10, false)
	d.box("Nome Empresarial / Nome Completo", r.EmployerName, 140, 10, true)
	p.Ln(2)

	d.section("2", "PESSOA FÍSICA BENEFICIÁRIA DOS RENDIMENTOS")
	d.box("CPF", string(st.Person), 40, 10, false)
	d.box("Nome Completo", st.Name, 150, 10, true)
	d.box("Natureza do Rendimento", "Rendimento do Trabalho Assalariado", 190, 8, true)
	p.Ln(2)

	d.section("3", "RENDIMENTOS TRIBUTÁVEIS, DEDUÇÕES E IMPOSTO RETIDO NA FONTE")
	d.row("1. Total dos rendimentos (inclusive férias)", brl.Format(st.Gross))
	d.row("2. Contribuição previdenciária oficial", brl.Format(st.INSS))
	d.row("3. Contribuição a previdência complementar", "0,00")
	d.row("4. Pensão alimentícia", "0,00")
	d.row("5. Imposto sobre a renda retido na fonte", brl.Format(st.IRRF))
	p.Ln(2)

	d.section("4", "RENDIMENTOS ISENTOS E NÃO TRIBUTÁVEIS")
	d.row("1. Parcela isenta de aposentadoria (65 anos+)", "0,00")
	d.row("7. Outros", "0,00")
	p.Ln(2)

	d.section("5", "RENDIMENTOS SUJEITOS À TRIBUTAÇÃO EXCLUSIVA (RENDIMENTO LÍQUIDO)")
	d.row("1. Décimo terceiro salário", brl.Format(st.NetThirteenth))
	d.row("2. Imposto sobre a renda retido na fonte sobre 13º salário", brl.Format(st.ThirteenthIRRF))
	p.Ln(2)

	d.section("7", "INFORMAÇÕES COMPLEMENTARES")
	p.SetFont("Arial", "", 7)
	p.MultiCell(0, 4, d.tr(st.HealthInfo), "1", "L", false)
	p.Ln(2)

	d.section("8", "RESPONSÁVEL PELAS INFORMAÇÕES")
	d.box("Nome", r.EmployerName, 110, 10, false)
	signature := time.Now().Format("02/01/") + fmt.Sprint(r.Year+1)
	d.box("Data", signature, 30, 10, false)
	d.box("Assinatura", "", 50, 10, true)

	p.Ln(5)
	p.SetFont("Arial", "", 6)
	d.cell(0, 4, "Aprovado pela Instrução Normativa RFB nº 1.682, de 28 de dezembro de 2016.", "", 0, "C")
}
