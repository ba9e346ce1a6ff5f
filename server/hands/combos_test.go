package hands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombosCountAndUniqueness(t *testing.T) {
	total := 0
	seen := map[string]bool{}
	for _, code := range All() {
		h, err := Parse(code)
		require.NoError(t, err)
		combos, err := Combos(h)
		require.NoError(t, err)
		require.Len(t, combos, h.ComboCount(), code)
		for _, c := range combos {
			require.True(t, c[0].Valid() && c[1].Valid(), code)
			require.NotEqual(t, c[0], c[1], code)
			k1 := c[0].String() + c[1].String()
			k2 := c[1].String() + c[0].String()
			require.False(t, seen[k1] || seen[k2], "duplicate combo %s in %s", k1, code)
			seen[k1] = true
		}
		total += len(combos)
	}
	require.Equal(t, TotalCombos, total)
}

func TestComboLabels(t *testing.T) {
	cases := map[string][]string{
		"AKs": {"AcKc", "AdKd", "AhKh", "AsKs"},
		"AA":  {"AcAd", "AcAh", "AcAs", "AdAh", "AdAs", "AhAs"},
	}
	for code, want := range cases {
		h, err := Parse(code)
		require.NoError(t, err)
		got, err := ComboLabels(h)
		require.NoError(t, err)
		require.Equal(t, want, got, code)
	}

	h, err := Parse("T9o")
	require.NoError(t, err)
	got, err := ComboLabels(h)
	require.NoError(t, err)
	require.Len(t, got, 12)
	require.Equal(t, "Tc9d", got[0])
	require.NotContains(t, got, "Tc9c")
}
