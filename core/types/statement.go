// Package types - aggregated statement record
package types

import "github.com/shopspring/decimal"

// Statement is the per-person annual aggregate handed to the renderers
// unchanged. All amounts are exact decimals; locale formatting (decimal
// comma, thousands separator) is a renderer concern.
type Statement struct {
	// Person is the beneficiary CPF
	Person PersonID `json:"cpf"`

	// Name is the resolved display name
	Name string `json:"name"`

	// Gross is the taxable salary total
	Gross decimal.Decimal `json:"gross"`

	// INSS is the monthly social-security total
	INSS decimal.Decimal `json:"inss"`

	// IRRF is the monthly withheld-tax total, manual corrections included
	IRRF decimal.Decimal `json:"irrf"`

	// ThirteenthGross is the gross 13th-salary total
	ThirteenthGross decimal.Decimal `json:"thirteenth_gross"`

	// ThirteenthINSS is the social-security total over the 13th salary
	ThirteenthINSS decimal.Decimal `json:"thirteenth_inss"`

	// ThirteenthIRRF is the withheld-tax total over the 13th salary
	ThirteenthIRRF decimal.Decimal `json:"thirteenth_irrf"`

	// NetThirteenth is ThirteenthGross minus ThirteenthINSS, not clamped
	NetThirteenth decimal.Decimal `json:"net_thirteenth"`

	// HealthInfo is the rendered supplementary-information text block
	HealthInfo string `json:"health_info"`
}
