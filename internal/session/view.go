package session

import "strings"

// View names one screen of the navigation flow.
type View string

const (
	ViewHome View = "home"

	loginSuffix     = "-login"
	dashboardSuffix = "-dashboard"
)

// LoginView is the login screen name for role.
func LoginView(r Role) View { return View(string(r) + loginSuffix) }

// DashboardView is the dashboard screen name for role.
func DashboardView(r Role) View { return View(string(r) + dashboardSuffix) }

// Views lists every named view.
func Views() []View {
	out := []View{ViewHome}
	for _, r := range Roles {
		out = append(out, LoginView(r))
	}
	for _, r := range Roles {
		out = append(out, DashboardView(r))
	}
	return out
}

// ScreenKind is what the router decided to render.
type ScreenKind int

const (
	ScreenNone ScreenKind = iota
	ScreenHome
	ScreenLogin
	ScreenDashboard
)

func (k ScreenKind) String() string {
	switch k {
	case ScreenHome:
		return "home"
	case ScreenLogin:
		return "login"
	case ScreenDashboard:
		return "dashboard"
	}
	return "none"
}

// Screen is the router's output.
type Screen struct {
	Kind ScreenKind
	Role Role
}

// Route picks the screen for the given session and view. Dashboards need a
// session; without one, and for unknown names, nothing renders.
func Route(s Session, v View) Screen {
	if v == ViewHome {
		return Screen{Kind: ScreenHome}
	}
	name := string(v)
	if role, ok := roleWithSuffix(name, loginSuffix); ok {
		return Screen{Kind: ScreenLogin, Role: role}
	}
	if role, ok := roleWithSuffix(name, dashboardSuffix); ok {
		if !s.Present() {
			return Screen{Kind: ScreenNone}
		}
		return Screen{Kind: ScreenDashboard, Role: role}
	}
	return Screen{Kind: ScreenNone}
}

func roleWithSuffix(name, suffix string) (Role, bool) {
	if !strings.HasSuffix(name, suffix) {
		return "", false
	}
	r := Role(strings.TrimSuffix(name, suffix))
	if _, ok := roleCaps[r]; !ok {
		return "", false
	}
	return r, true
}
