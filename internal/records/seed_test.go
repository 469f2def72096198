package records

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	t.Parallel()

	seed, err := DefaultSeed()
	require.NoError(t, err)
	require.NotEmpty(t, seed.Loans)
	require.NotEmpty(t, seed.Payments)

	ids := map[string]struct{}{}
	for _, l := range seed.Loans {
		_, dup := ids[l.ID]
		require.False(t, dup, "duplicate loan id %s", l.ID)
		ids[l.ID] = struct{}{}
	}
	for _, p := range seed.Payments {
		_, ok := ids[p.LoanID]
		require.True(t, ok, "payment %s references unknown loan %s", p.ID, p.LoanID)
		if p.Status == PaymentCompleted {
			require.NotNil(t, p.Date)
		} else {
			require.Nil(t, p.Date)
		}
	}

	s := NewStore(seed)
	require.Equal(t, "LN-2024-006", s.AddLoan(LoanInput{}, 101).ID)
}

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := strings.Join([]string{
		"loans:",
		"  - id: LN-2024-010",
		"    borrower_id: 4",
		"    amount: 1200",
		"    status: Active",
		"    start_date: \"2024-02-01\"",
		"payments:",
		"  - id: P1",
		"    loan_id: LN-2024-010",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seed.Loans, 1)
	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), seed.Loans[0].StartDate)
	require.True(t, seed.Loans[0].NextPaymentDate.IsZero())
	require.Equal(t, PaymentPending, seed.Payments[0].Status)
}

func TestLoadSeedRejectsBadDate(t *testing.T) {
	t.Parallel()

	_, err := LoadSeed(strings.NewReader("loans:\n  - id: L1\n    start_date: \"15/01/2024\"\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "start_date")
}

func TestLoadSeedEmpty(t *testing.T) {
	t.Parallel()

	seed, err := LoadSeed(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, seed.Loans)
	require.Empty(t, seed.Payments)
}

func TestLoadSeedRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	_, err := LoadSeed(strings.NewReader("payments:\n  - id: P1\n    loan_id: L1\n    status: Refunded\n"))
	require.ErrorContains(t, err, "payment 0 status")
	require.ErrorContains(t, err, "Refunded")

	_, err = LoadSeed(strings.NewReader("loans:\n  - id: L1\n    status: Frozen\n"))
	require.ErrorContains(t, err, "loan 0 status")

	seed, err := LoadSeed(strings.NewReader("loans:\n  - id: L1\n    status: Paid Off\n  - id: L2\n"))
	require.NoError(t, err)
	require.Equal(t, LoanPaidOff, seed.Loans[0].Status)
	require.Equal(t, LoanActive, seed.Loans[1].Status)
}
