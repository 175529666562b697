package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestUploadStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from     UploadStatus
		to       UploadStatus
		expected bool
	}{
		{UploadStatusPending, UploadStatusProcessing, true},
		{UploadStatusPending, UploadStatusFailed, true},
		{UploadStatusPending, UploadStatusCompleted, false},
		{UploadStatusProcessing, UploadStatusCompleted, true},
		{UploadStatusProcessing, UploadStatusFailed, true},
		{UploadStatusProcessing, UploadStatusPending, false},
		{UploadStatusCompleted, UploadStatusFailed, false},
		{UploadStatusFailed, UploadStatusProcessing, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestUploadStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, UploadStatusPending.IsTerminal())
	assert.False(t, UploadStatusProcessing.IsTerminal())
	assert.True(t, UploadStatusCompleted.IsTerminal())
	assert.True(t, UploadStatusFailed.IsTerminal())
	assert.False(t, UploadStatus("archived").IsValid())
}

func TestRowData_ValueAndScan(t *testing.T) {
	t.Parallel()

	in := RowData{"plan_name": "Gold", "tenure_months": "12"}
	v, err := in.Value()
	require.NoError(t, err)

	var out RowData
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(`{"a":"b"}`))
	assert.Equal(t, RowData{"a": "b"}, out)

	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)

	assert.Error(t, out.Scan(42))
}

func TestFDPlan_AcceptsPrincipal(t *testing.T) {
	t.Parallel()

	maxAmount := decimal.NewFromInt(500000)
	bounded := &FDPlan{MinimumAmount: decimal.NewFromInt(100000), MaximumAmount: &maxAmount}
	open := &FDPlan{MinimumAmount: decimal.NewFromInt(100000)}

	tests := []struct {
		name      string
		plan      *FDPlan
		principal int64
		expected  bool
	}{
		{"below minimum", bounded, 50000, false},
		{"at minimum", bounded, 100000, true},
		{"at maximum", bounded, 500000, true},
		{"above maximum", bounded, 500001, false},
		{"open ended", open, 90000000, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.plan.AcceptsPrincipal(decimal.NewFromInt(tt.principal)))
		})
	}
}

func TestInterestRateCondition_Covers(t *testing.T) {
	t.Parallel()

	band := InterestRateCondition{ConditionType: ConditionTypePremature, MinTenureMonths: intPtr(3), MaxTenureMonths: intPtr(6)}
	openBand := InterestRateCondition{ConditionType: ConditionTypePremature, MinTenureMonths: intPtr(6)}
	maturity := InterestRateCondition{ConditionType: ConditionTypeMaturity}

	assert.False(t, band.Covers(2))
	assert.True(t, band.Covers(3))
	assert.True(t, band.Covers(5))
	assert.False(t, band.Covers(6))
	assert.True(t, openBand.Covers(600))
	assert.False(t, maturity.Covers(12))
}
