package session

// Actor is the data a login form supplies about the person logging in.
type Actor struct {
	ID    int
	Name  string
	Email string
}

// Session is the logged-in actor, if any. The zero value means nobody is
// logged in.
type Session struct {
	role    Role
	actor   Actor
	id      string
	present bool
}

// Present reports whether somebody is logged in.
func (s Session) Present() bool { return s.present }

// Role of the logged-in actor.
func (s Session) Role() Role { return s.role }

// Actor returns the logged-in actor's data.
func (s Session) Actor() Actor { return s.actor }

// ID is the correlation id assigned at login; empty when absent.
func (s Session) ID() string { return s.id }
