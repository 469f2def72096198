package session

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/loanboard/internal/records"
)

// Controller owns the session, the active view and the record store. Views
// read state through it and change state only through its methods. It is
// driven from a single event loop and is not safe for concurrent use.
type Controller struct {
	store   *records.Store
	session Session
	view    View
	log     *zap.Logger
	newID   func() string
}

// NewController starts at the home view with nobody logged in.
func NewController(store *records.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		store: store,
		view:  ViewHome,
		log:   log,
		newID: uuid.NewString,
	}
}

func (c *Controller) Session() Session { return c.session }
func (c *Controller) View() View       { return c.view }
func (c *Controller) Store() *records.Store {
	return c.store
}

// Screen is the router's decision for the current state.
func (c *Controller) Screen() Screen { return Route(c.session, c.view) }

// Navigate switches to v without touching the session.
func (c *Controller) Navigate(v View) {
	c.view = v
}

// Login records the actor and opens the role's dashboard. Any role and data
// are accepted.
func (c *Controller) Login(role Role, actor Actor) {
	c.session = Session{role: role, actor: actor, id: c.newID(), present: true}
	c.view = DashboardView(role)
	c.log.Info("login",
		zap.String("session", c.session.id),
		zap.String("role", string(role)),
		zap.Int("actor_id", actor.ID),
	)
}

// Logout clears the session and returns home. Calling it twice is harmless.
func (c *Controller) Logout() {
	if c.session.present {
		c.log.Info("logout", zap.String("session", c.session.id), zap.String("role", string(c.session.role)))
	}
	c.session = Session{}
	c.view = ViewHome
}

// AddLoan creates a loan lent by the logged-in actor. Without a session or
// the add-loan capability it does nothing.
func (c *Controller) AddLoan(in records.LoanInput) (records.Loan, bool) {
	if !c.allowed(CanAddLoan) {
		return records.Loan{}, false
	}
	loan := c.store.AddLoan(in, c.session.actor.ID)
	c.log.Info("loan added",
		zap.String("session", c.session.id),
		zap.String("loan_id", loan.ID),
		zap.Int("borrower_id", loan.BorrowerID),
		zap.Float64("amount", loan.Amount),
	)
	return loan, true
}

// ProcessPayment completes the payment with the given id. Unknown ids, a
// missing session and roles without the capability are silent no-ops.
func (c *Controller) ProcessPayment(id string) (records.Payment, bool) {
	if !c.allowed(CanProcessPayment) {
		return records.Payment{}, false
	}
	p, ok := c.store.ProcessPayment(id)
	if !ok {
		c.log.Debug("payment not found", zap.String("session", c.session.id), zap.String("payment_id", id))
		return records.Payment{}, false
	}
	c.log.Info("payment processed",
		zap.String("session", c.session.id),
		zap.String("payment_id", p.ID),
		zap.String("transaction_id", p.TransactionID),
	)
	return p, true
}

func (c *Controller) allowed(want Capabilities) bool {
	return c.session.present && c.session.role.Capabilities().Has(want)
}

// Dashboard is everything a dashboard view is handed: who is looking, what
// they may do, and the records visible to them.
type Dashboard struct {
	Role     Role
	Actor    Actor
	Caps     Capabilities
	Loans    []records.Loan
	Payments []records.Payment
}

// Dashboard builds the props of the active dashboard. ok is false when the
// router renders anything else.
func (c *Controller) Dashboard() (Dashboard, bool) {
	screen := c.Screen()
	if screen.Kind != ScreenDashboard {
		return Dashboard{}, false
	}
	caps := screen.Role.Capabilities() & c.session.role.Capabilities()
	d := Dashboard{Role: screen.Role, Actor: c.session.actor, Caps: caps}
	if caps.Has(CanViewLoans) {
		d.Loans = visibleLoans(screen.Role, c.session.actor, c.store.Loans())
	}
	if caps.Has(CanViewPayments) {
		d.Payments = visiblePayments(screen.Role, d.Loans, c.store.Payments())
	}
	return d, true
}

func visibleLoans(role Role, actor Actor, loans []records.Loan) []records.Loan {
	var keep func(records.Loan) bool
	switch role {
	case RoleBorrower:
		keep = func(l records.Loan) bool { return l.BorrowerID == actor.ID }
	case RoleLender:
		keep = func(l records.Loan) bool { return l.LenderID == actor.ID }
	default:
		return loans
	}
	var out []records.Loan
	for _, l := range loans {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func visiblePayments(role Role, loans []records.Loan, payments []records.Payment) []records.Payment {
	if role != RoleBorrower {
		return payments
	}
	own := make(map[string]struct{}, len(loans))
	for _, l := range loans {
		own[l.ID] = struct{}{}
	}
	var out []records.Payment
	for _, p := range payments {
		if _, ok := own[p.LoanID]; ok {
			out = append(out, p)
		}
	}
	return out
}
