package records

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"1000":        1000,
		" 12.50 ":     12.5,
		"-3":          -3,
		"+4.5":        4.5,
		"1e3":         1000,
		"0":           0,
		"1000.001":    1000.001,
		"12abc":       12,
		"1000.50 USD": 1000.5,
		"1.":          1,
		".5":          0.5,
		"2e":          2,
		"2e+x":        2,
		"3E-2kg":      0.03,
		"0x10":        0,
		"1e-400":      0,
		"7,5":         7,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseAmount(in), in)
	}

	require.True(t, math.IsInf(ParseAmount("1e400"), 1))
	require.True(t, math.IsInf(ParseAmount("-1e400"), -1))
	require.True(t, math.IsInf(ParseAmount("Infinity"), 1))
	require.True(t, math.IsInf(ParseAmount("-Infinity years"), -1))

	for _, bad := range []string{"", "abc", "$10", ".", "-", "+.", "inf", "Inf", "nan", "NaN", "e5", "infinity"} {
		require.True(t, math.IsNaN(ParseAmount(bad)), bad)
	}
}

func TestParseWhole(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"12":   12,
		"12.5": 12,
		" 7 ":  7,
		"-4":   -4,
		"+9":   9,
		"36mo": 36,
		"":     0,
		"abc":  0,
		"-":    0,
		"x12":  0,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseWhole(in), in)
	}
}

func TestMonthlyPayment(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100.0, MonthlyPayment(1000, 0, 10))
	require.Equal(t, 470.73, MonthlyPayment(10000, 12, 24))
	require.True(t, math.IsNaN(MonthlyPayment(1000, 5, 0)))
	require.True(t, math.IsNaN(MonthlyPayment(math.NaN(), 5, 12)))
	require.True(t, math.IsNaN(MonthlyPayment(1000, -1, 12)))
}
