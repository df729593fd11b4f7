package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999.99, "$999"},
		{68600, "$68,600"},
		{1997650.75, "$1,997,650"},
		{-1000.5, "-$1,001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "Currency(%v)", tt.in)
	}
}

func TestJobValue(t *testing.T) {
	assert.Equal(t, "$50,000+", JobValue(50000, 50000))
	assert.Equal(t, "$50,000+", JobValue(60000, 50000))
	assert.Equal(t, "$49,900", JobValue(49900, 50000))
	assert.Equal(t, "$10,000", JobValue(10000, 50000))
}

func TestPercentAndMultiplier(t *testing.T) {
	assert.Equal(t, "4,900%", Percent(4900))
	assert.Equal(t, "12%", Percent(12.99))
	assert.Equal(t, "-15%", Percent(-14.2))
	assert.Equal(t, "49.0x", Multiplier(49.06))
	assert.Equal(t, "2.9x", Multiplier(2.99))
	assert.Equal(t, "35%", Rate(35))
}

func TestDeals(t *testing.T) {
	assert.Equal(t, "7.0", Deals(7))
	assert.Equal(t, "0.7", Deals(0.75))
	assert.Equal(t, "0.7", Deals(5*14.0/100))
	assert.Equal(t, "40.0", Deals(40))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "4,900% Projected ROI", ROILabel(4900))
	assert.Equal(t, "7.0 Jobs/Month", DealsLabel(7))
	assert.Equal(t, "$70 per Appointment", CPALabel(70))
	assert.Contains(t, Disclaimer, "not guaranteed")
}
