package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	t.Parallel()

	loggedIn := Session{role: RoleLender, actor: Actor{ID: 101}, present: true}
	cases := []struct {
		name    string
		session Session
		view    View
		want    Screen
	}{
		{"home", Session{}, ViewHome, Screen{Kind: ScreenHome}},
		{"home while logged in", loggedIn, ViewHome, Screen{Kind: ScreenHome}},
		{"borrower login", Session{}, "borrower-login", Screen{Kind: ScreenLogin, Role: RoleBorrower}},
		{"analyst login", Session{}, "analyst-login", Screen{Kind: ScreenLogin, Role: RoleAnalyst}},
		{"dashboard without session", Session{}, "admin-dashboard", Screen{Kind: ScreenNone}},
		{"dashboard with session", loggedIn, "lender-dashboard", Screen{Kind: ScreenDashboard, Role: RoleLender}},
		{"other role dashboard", loggedIn, "admin-dashboard", Screen{Kind: ScreenDashboard, Role: RoleAdmin}},
		{"unknown role", loggedIn, "guest-dashboard", Screen{Kind: ScreenNone}},
		{"unknown view", loggedIn, "settings", Screen{Kind: ScreenNone}},
		{"empty view", Session{}, "", Screen{Kind: ScreenNone}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Route(tc.session, tc.view))
		})
	}
}

func TestViewsAreNineNames(t *testing.T) {
	t.Parallel()

	views := Views()
	require.Len(t, views, 9)
	seen := map[View]bool{}
	for _, v := range views {
		require.False(t, seen[v], "duplicate view %s", v)
		seen[v] = true
		require.NotEqual(t, ScreenNone, Route(Session{present: true, role: RoleAdmin}, v).Kind)
	}
	require.True(t, seen["lender-dashboard"])
	require.True(t, seen["admin-login"])
}

func TestCapabilities(t *testing.T) {
	t.Parallel()

	require.True(t, RoleBorrower.Capabilities().Has(CanProcessPayment|CanViewPayments))
	require.False(t, RoleBorrower.Capabilities().Has(CanAddLoan))
	require.True(t, RoleLender.Capabilities().Has(CanAddLoan))
	require.False(t, RoleLender.Capabilities().Has(CanViewPayments))
	require.Equal(t, CanViewLoans, RoleAdmin.Capabilities())
	require.True(t, RoleAnalyst.Capabilities().Has(CanViewPayments))
	require.False(t, RoleAnalyst.Capabilities().Has(CanProcessPayment))
	require.Zero(t, Role("guest").Capabilities())
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	r, ok := ParseRole(" Lender ")
	require.True(t, ok)
	require.Equal(t, RoleLender, r)

	_, ok = ParseRole("guest")
	require.False(t, ok)

	require.Equal(t, "Financial Analyst", RoleAnalyst.Title())
	require.Equal(t, "Borrower", RoleBorrower.Title())
}
