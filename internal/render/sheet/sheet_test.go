package sheet

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"esocial-informe/core/types"
)

func TestWrite(t *testing.T) {
	statements := []types.Statement{
		{
			Person:          "11122233344",
			Name:            "MARIA DA SILVA",
			Gross:           decimal.RequireFromString("5000.00"),
			INSS:            decimal.RequireFromString("500.00"),
			IRRF:            decimal.RequireFromString("120.00"),
			ThirteenthGross: decimal.Zero,
			ThirteenthINSS:  decimal.Zero,
			ThirteenthIRRF:  decimal.Zero,
			NetThirteenth:   decimal.Zero,
			HealthInfo:      "DESPESAS MÉDICAS/ODONTOLÓGICAS:\nOPERADORA CNPJ: 1 (Reg. ANS: 2) - VALOR ANUAL: R$ 100,00\n",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, statements))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	cpf, err := f.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "11122233344", cpf)

	name, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "MARIA DA SILVA", name)

	gross, err := f.GetCellValue(SheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "5000", gross)

	health, err := f.GetCellValue(SheetName, "J2")
	require.NoError(t, err)
	assert.NotContains(t, health, "\n")
	assert.Contains(t, health, " | ")
}
