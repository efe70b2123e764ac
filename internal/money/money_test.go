package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"integer", "350000", 35000000},
		{"two fraction digits", "500.00", 50000},
		{"one fraction digit is padded", "12.5", 1250},
		{"extra digits are truncated", "10.239", 1023},
		{"truncation does not round up", "0.999", 99},
		{"negative", "-7.05", -705},
		{"negative truncates toward zero", "-1.239", -123},
		{"blank is zero", "   ", 0},
		{"empty is zero", "", 0},
		{"surrounding whitespace", " 42.10 ", 4210},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinorUnits(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid input", func(t *testing.T) {
		_, err := ToMinorUnits("12,50")
		assert.Error(t, err)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := ToMinorUnits("999999999999999999999")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestFromMinorUnits(t *testing.T) {
	assert.Equal(t, "0.00", FromMinorUnits(0))
	assert.Equal(t, "400.00", FromMinorUnits(40000))
	assert.Equal(t, "0.07", FromMinorUnits(7))
	assert.Equal(t, "-12.50", FromMinorUnits(-1250))
	assert.Equal(t, "-0.05", FromMinorUnits(-5))
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 99, 100, 101, 123456789, -987654321, 1 << 50} {
		got, err := ToMinorUnits(FromMinorUnits(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	for _, s := range []string{"0.00", "0.01", "100.00", "350000.75", "-42.10"} {
		n, err := ToMinorUnits(s)
		require.NoError(t, err)
		assert.Equal(t, s, FromMinorUnits(n))
	}
}

func TestIsExact(t *testing.T) {
	assert.True(t, IsExact(decimal.RequireFromString("100")))
	assert.True(t, IsExact(decimal.RequireFromString("100.5")))
	assert.True(t, IsExact(decimal.RequireFromString("100.250")))
	assert.False(t, IsExact(decimal.RequireFromString("100.255")))
}
