package records

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	loans := []Loan{
		{ID: "LN-2024-001", Purpose: "Home renovation"},
		{ID: "LN-2024-002", Purpose: "Car purchase"},
		{ID: "LN-2024-003", Purpose: "Medical expenses"},
	}

	require.Equal(t, loans, Search(loans, "  "))

	got := Search(loans, "car")
	require.Len(t, got, 1)
	require.Equal(t, "LN-2024-002", got[0].ID)

	got = Search(loans, "-003")
	require.Len(t, got, 1)
	require.Equal(t, "LN-2024-003", got[0].ID)

	// misspelling of "medical"
	got = Search(loans, "medicl")
	require.Len(t, got, 1)
	require.Equal(t, "LN-2024-003", got[0].ID)

	require.Empty(t, Search(loans, "yacht"))
}
