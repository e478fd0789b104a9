package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esocial-informe/internal/errors"
)

const sampleHCL = `
year = 2025

employer {
  name = "SUA EMPRESA LTDA"
  cnpj = "00.000.000/0001-00"
}

category "gross" {
  codes = ["1000", "1010"]
}

category "inss" {
  codes = ["2000"]
}

category "thirteenth_gross" {
  codes = ["5010"]
}

name "11122233344" {
  value = "MARIA DA SILVA"
}

correction {
  cpf          = "11122233344"
  period       = "2025-01"
  paid         = "05/02/2025"
  withheld_tax = "120.00"
}

correction {
  cpf    = "11122233344"
  period = "2025-02"
}
`

func TestDecodeSession(t *testing.T) {
	sess, err := Decode("sessao.hcl", []byte(sampleHCL))
	require.NoError(t, err)

	assert.Equal(t, 2025, sess.Year)
	assert.Equal(t, "SUA EMPRESA LTDA", sess.Employer.Name)
	assert.Equal(t, "00.000.000/0001-00", sess.Employer.CNPJ)

	assert.True(t, sess.Mapping.Has("gross", "1000"))
	assert.True(t, sess.Mapping.Has("gross", "1010"))
	assert.True(t, sess.Mapping.Has("inss", "2000"))
	assert.False(t, sess.Mapping.Has("irrf", "1000"))

	assert.Equal(t, "MARIA DA SILVA", sess.Names["11122233344"])

	require.Len(t, sess.Corrections, 2)
	first := sess.Corrections[0]
	assert.Equal(t, "05/02/2025", first.PaymentDate)
	assert.True(t, first.Active())
	assert.True(t, first.WithheldTax.Equal(decimal.RequireFromString("120.00")))

	// the second block has no paid date: still pending
	assert.False(t, sess.Corrections[1].Active())
	assert.True(t, sess.Corrections[1].WithheldTax.IsZero())

	assert.NoError(t, sess.RequireGrossMapping())
}

func TestDecodeRejectsImplausibleYear(t *testing.T) {
	_, err := Decode("sessao.hcl", []byte("year = 1999\n"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestDecodeRejectsUnknownCategory(t *testing.T) {
	src := `
year = 2025
category "bonus" {
  codes = ["9000"]
}
`
	_, err := Decode("sessao.hcl", []byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestDecodeRejectsBadWithheldTax(t *testing.T) {
	src := `
year = 2025
correction {
  cpf          = "1"
  period       = "2025-01"
  paid         = "x"
  withheld_tax = "abc"
}
`
	_, err := Decode("sessao.hcl", []byte(src))
	require.Error(t, err)
}

func TestRequireGrossMapping(t *testing.T) {
	sess, err := Decode("sessao.hcl", []byte("year = 2025\n"))
	require.NoError(t, err)
	assert.Error(t, sess.RequireGrossMapping())
}
