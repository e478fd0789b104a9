package pdf

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esocial-informe/core/types"
)

func sampleStatement(person, name string) types.Statement {
	return types.Statement{
		Person:          types.PersonID(person),
		Name:            name,
		Gross:           decimal.RequireFromString("5000.00"),
		INSS:            decimal.RequireFromString("500.00"),
		IRRF:            decimal.RequireFromString("120.00"),
		ThirteenthGross: decimal.Zero,
		ThirteenthINSS:  decimal.Zero,
		ThirteenthIRRF:  decimal.Zero,
		NetThirteenth:   decimal.Zero,
		HealthInfo:      "Sem informações complementares.",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := &Renderer{Year: 2025, EmployerName: "SUA EMPRESA LTDA", EmployerCNPJ: "00.000.000/0001-00"}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleStatement("11122233344", "MARIA DA SILVA")))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteBundle(t *testing.T) {
	r := &Renderer{Year: 2025, EmployerName: "E", EmployerCNPJ: "C"}
	statements := []types.Statement{
		sampleStatement("1", "ALICE"),
		sampleStatement("2", "BOB/CO"),
	}

	var buf bytes.Buffer
	require.NoError(t, r.WriteBundle(&buf, statements))

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)
	assert.Equal(t, "Informe_ALICE.pdf", reader.File[0].Name)
	// path separators in names are sanitized
	assert.Equal(t, "Informe_BOB_CO.pdf", reader.File[1].Name)
}
