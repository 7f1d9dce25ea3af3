package domain_test

import (
	"testing"

	"github.com/dallyhq/dally_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bound(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func TestNigeriaTaxAct2026_Valid(t *testing.T) {
	rules := domain.NigeriaTaxAct2026()
	require.NoError(t, rules.Validate())
	assert.Equal(t, 2026, rules.Year)
	assert.True(t, rules.ExemptThreshold.Equal(decimal.NewFromInt(800_000)))
	assert.Len(t, rules.Brackets, 5)
	assert.Nil(t, rules.Brackets[4].UpperBound)
}

func TestTaxRuleSetValidate(t *testing.T) {
	rate := decimal.NewFromFloat(0.15)

	testCases := []struct {
		name    string
		rules   domain.TaxRuleSet
		wantErr bool
	}{
		{
			name:    "no brackets",
			rules:   domain.TaxRuleSet{Year: 2026},
			wantErr: true,
		},
		{
			name: "final bracket bounded",
			rules: domain.TaxRuleSet{Year: 2026, Brackets: []domain.TaxBracket{
				{UpperBound: bound(1000), Rate: rate},
			}},
			wantErr: true,
		},
		{
			name: "unbounded bracket mid-table",
			rules: domain.TaxRuleSet{Year: 2026, Brackets: []domain.TaxBracket{
				{UpperBound: nil, Rate: rate},
				{UpperBound: nil, Rate: rate},
			}},
			wantErr: true,
		},
		{
			name: "non-increasing bounds",
			rules: domain.TaxRuleSet{Year: 2026, Brackets: []domain.TaxBracket{
				{UpperBound: bound(1000), Rate: rate},
				{UpperBound: bound(1000), Rate: rate},
				{UpperBound: nil, Rate: rate},
			}},
			wantErr: true,
		},
		{
			name: "zero rate",
			rules: domain.TaxRuleSet{Year: 2026, Brackets: []domain.TaxBracket{
				{UpperBound: bound(1000), Rate: decimal.Zero},
				{UpperBound: nil, Rate: rate},
			}},
			wantErr: true,
		},
		{
			name: "rate above one",
			rules: domain.TaxRuleSet{Year: 2026, Brackets: []domain.TaxBracket{
				{UpperBound: nil, Rate: decimal.NewFromFloat(1.5)},
			}},
			wantErr: true,
		},
		{
			name: "single unbounded bracket",
			rules: domain.TaxRuleSet{Year: 2026, Brackets: []domain.TaxBracket{
				{UpperBound: nil, Rate: rate},
			}},
			wantErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rules.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
