package session

import "strings"

// Role identifies the kind of actor using the app.
type Role string

const (
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
	RoleAdmin    Role = "admin"
	RoleAnalyst  Role = "analyst"
)

// Roles lists the known roles in display order.
var Roles = []Role{RoleBorrower, RoleLender, RoleAdmin, RoleAnalyst}

// Capabilities is the set of data and actions a role's dashboard may use.
type Capabilities uint8

const (
	CanViewLoans Capabilities = 1 << iota
	CanViewPayments
	CanProcessPayment
	CanAddLoan
)

// Has reports whether every capability in c is present.
func (c Capabilities) Has(want Capabilities) bool {
	return c&want == want
}

var roleCaps = map[Role]Capabilities{
	RoleBorrower: CanViewLoans | CanViewPayments | CanProcessPayment,
	RoleLender:   CanViewLoans | CanAddLoan,
	RoleAdmin:    CanViewLoans,
	RoleAnalyst:  CanViewLoans | CanViewPayments,
}

// Capabilities returns the role's capability set. Unknown roles get none.
func (r Role) Capabilities() Capabilities {
	return roleCaps[r]
}

// Title is the human label of the role.
func (r Role) Title() string {
	switch r {
	case RoleAnalyst:
		return "Financial Analyst"
	case "":
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Blurb is the one-line description shown on the home screen.
func (r Role) Blurb() string {
	switch r {
	case RoleBorrower:
		return "Access your loan applications and payments"
	case RoleLender:
		return "Manage your loan portfolio"
	case RoleAdmin:
		return "System administration and oversight"
	case RoleAnalyst:
		return "View reports and analytics"
	}
	return ""
}

// ParseRole resolves a role name, case-insensitively.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := roleCaps[r]
	return r, ok
}
