package event

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esocial-informe/core/types"
)

const remunerationXML = `<eSocial xmlns="http://www.esocial.gov.br/schema/evt/evtRemun/v_S_01_00_00">
  <evtRemun Id="ID1">
    <ideEvento><perApur>2025-01</perApur></ideEvento>
    <ideEmpregador><tpInsc>1</tpInsc><nrInsc>12345678000199</nrInsc></ideEmpregador>
    <ideTrabalhador><cpfTrab>11122233344</cpfTrab></ideTrabalhador>
    <dmDev>
      <ideDmDev>1</ideDmDev>
      <infoPerApur>
        <remunPerApur>
          <itensRemun><codRubr>1000</codRubr><vrRubr>5000.00</vrRubr></itensRemun>
          <itensRemun><codRubr>2000</codRubr><vrRubr>500.00</vrRubr></itensRemun>
        </remunPerApur>
      </infoPerApur>
    </dmDev>
  </evtRemun>
</eSocial>`

const paymentXML = `<eSocial xmlns="http://www.esocial.gov.br/schema/evt/evtPgtos/v_S_01_00_00">
  <evtPgtos Id="ID2">
    <ideBenef>
      <cpfBenef>11122233344</cpfBenef>
      <infoPgto><dtPgto>2025-02-05</dtPgto><perRef>2025-01</perRef></infoPgto>
      <infoPgto><dtPgto>2025-03-05</dtPgto><perRef>2025-02</perRef></infoPgto>
      <planSaude>
        <cnpjOper>99888777000166</cnpjOper>
        <regANS>123456</regANS>
        <vlrSaudeTit>350.75</vlrSaudeTit>
      </planSaude>
    </ideBenef>
  </evtPgtos>
</eSocial>`

const admissionXML = `<eSocial xmlns="http://www.esocial.gov.br/schema/evt/evtAdmissao/v_S_01_00_00">
  <evtAdmissao Id="ID3">
    <trabalhador>
      <cpfTrab>11122233344</cpfTrab>
      <nmTrab>MARIA DA SILVA</nmTrab>
    </trabalhador>
    <vinculo><infoRegimeTrab><infoCeletista><dtAdm>2025-03-15</dtAdm></infoCeletista></infoRegimeTrab></vinculo>
  </evtAdmissao>
</eSocial>`

const terminationXML = `<eSocial xmlns="http://www.esocial.gov.br/schema/evt/evtDeslig/v_S_01_00_00">
  <evtDeslig Id="ID4">
    <ideTrabalhador><cpfTrab>11122233344</cpfTrab></ideTrabalhador>
    <desligamento><dtDeslig>2025-09-30</dtDeslig></desligamento>
  </evtDeslig>
</eSocial>`

func TestClassifyPrecedence(t *testing.T) {
	cases := []struct {
		name string
		xml  string
		want Kind
	}{
		{"remuneration", remunerationXML, KindRemuneration},
		{"payment", paymentXML, KindPayment},
		{"admission", admissionXML, KindEmploymentStart},
		{"termination", terminationXML, KindEmploymentEnd},
		// a worker element plus a termination marker must classify as end,
		// not start
		{"worker with termination", `<e><trabalhador><cpfTrab>1</cpfTrab></trabalhador><termino><dtTerm>2025-01-31</dtTerm></termino></e>`, KindEmploymentEnd},
		{"no markers", `<e><foo>bar</foo></e>`, KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := Parse([]byte(tc.xml))
			require.NotNil(t, doc)
			assert.Equal(t, tc.want, Classify(doc))
		})
	}
}

func TestExtractRemuneration(t *testing.T) {
	facts := Extract([]byte(remunerationXML))
	require.NotNil(t, facts)
	require.Len(t, facts.Items, 2)

	first := facts.Items[0]
	assert.Equal(t, types.PersonID("11122233344"), first.Person)
	assert.Equal(t, types.Period("2025-01"), first.Period)
	assert.Equal(t, "1000", first.PayCode)
	assert.Equal(t, "12345678000199", first.Employer)
	// amounts must equal the parsed decimal text exactly
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("5000.00")))
	assert.Equal(t, "5000", first.Amount.String())
	assert.True(t, facts.Items[1].Amount.Equal(decimal.RequireFromString("500.00")))
}

func TestExtractRemunerationWithPrefixedNamespace(t *testing.T) {
	xml := `<ns:eSocial xmlns:ns="http://example.com/s">
  <ns:evtRemun>
    <ns:ideEvento><ns:perApur>2025-02</ns:perApur></ns:ideEvento>
    <ns:ideEmpregador><ns:nrInsc>111</ns:nrInsc></ns:ideEmpregador>
    <ns:ideTrabalhador><ns:cpfTrab>22233344455</ns:cpfTrab></ns:ideTrabalhador>
    <ns:dmDev><ns:itensRemun><ns:codRubr>1000</ns:codRubr><ns:vrRubr>10.50</ns:vrRubr></ns:itensRemun></ns:dmDev>
  </ns:evtRemun>
</ns:eSocial>`
	facts := Extract([]byte(xml))
	require.NotNil(t, facts)
	require.Len(t, facts.Items, 1)
	assert.Equal(t, types.Period("2025-02"), facts.Items[0].Period)
}

func TestExtractRemunerationBadAmountDropsLineOnly(t *testing.T) {
	xml := `<e><evtRemun>
  <perApur>2025-01</perApur>
  <ideEmpregador><nrInsc>111</nrInsc></ideEmpregador>
  <cpfTrab>11122233344</cpfTrab>
  <dmDev>
    <itensRemun><codRubr>1000</codRubr><vrRubr>not-a-number</vrRubr></itensRemun>
    <itensRemun><codRubr>2000</codRubr><vrRubr>100.00</vrRubr></itensRemun>
  </dmDev>
</evtRemun></e>`
	facts := Extract([]byte(xml))
	require.NotNil(t, facts)
	require.Len(t, facts.Items, 1)
	assert.Equal(t, "2000", facts.Items[0].PayCode)
}

func TestExtractPayment(t *testing.T) {
	facts := Extract([]byte(paymentXML))
	require.NotNil(t, facts)

	require.Len(t, facts.Confirmations, 2)
	assert.Equal(t, types.Period("2025-01"), facts.Confirmations[0].Period)
	assert.Equal(t, types.Period("2025-02"), facts.Confirmations[1].Period)

	require.Len(t, facts.HealthCharges, 1)
	charge := facts.HealthCharges[0]
	assert.Equal(t, "99888777000166", charge.OperatorCNPJ)
	assert.Equal(t, "123456", charge.ANSRegistration)
	assert.True(t, charge.Amount.Equal(decimal.RequireFromString("350.75")))
}

func TestExtractEmploymentStart(t *testing.T) {
	facts := Extract([]byte(admissionXML))
	require.NotNil(t, facts)
	assert.Equal(t, "MARIA DA SILVA", facts.Names["11122233344"])
	assert.Equal(t, "2025-03-15", facts.Admissions["11122233344"])
}

func TestExtractEmploymentStartDateFallback(t *testing.T) {
	xml := `<e><trabalhador><cpfTrab>5</cpfTrab><nmTrab>X</nmTrab></trabalhador><dtInicio>2025-06-01</dtInicio></e>`
	facts := Extract([]byte(xml))
	require.NotNil(t, facts)
	assert.Equal(t, "2025-06-01", facts.Admissions["5"])
}

func TestExtractEmploymentEnd(t *testing.T) {
	facts := Extract([]byte(terminationXML))
	require.NotNil(t, facts)
	assert.Equal(t, "2025-09-30", facts.Terminations["11122233344"])

	xml := `<e><termino><dtTerm>2025-12-01</dtTerm></termino><cpfTrab>6</cpfTrab></e>`
	facts = Extract([]byte(xml))
	require.NotNil(t, facts)
	assert.Equal(t, "2025-12-01", facts.Terminations["6"])
}

func TestExtractUnusableDocuments(t *testing.T) {
	assert.Nil(t, Extract([]byte("not xml at all <<<")), "malformed input")
	assert.Nil(t, Extract([]byte(`<e><foo/></e>`)), "no markers")
	assert.Nil(t, Extract([]byte(`<e><evtRemun><perApur>2025-01</perApur></evtRemun></e>`)), "missing person id")
	assert.Nil(t, Extract([]byte(`<e><evtPgtos><foo/></evtPgtos></e>`)), "payment without beneficiary")
}
