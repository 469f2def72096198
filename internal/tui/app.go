package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/loanboard/internal/records"
	"github.com/jask/loanboard/internal/session"
)

// Journal receives mutations after they are applied to the store.
type Journal interface {
	LoanAdded(ctx context.Context, loan records.Loan) error
	PaymentProcessed(ctx context.Context, p records.Payment) error
}

// Options configures the App.
type Options struct {
	Journal        Journal // optional
	Log            *zap.Logger
	CurrencySymbol string
	DateFormat     string
}

// App renders whatever the session controller routes to and turns key
// presses into controller actions.
type App struct {
	ctx        context.Context
	ctrl       *session.Controller
	journal    Journal
	log        *zap.Logger
	currency   string
	dateFormat string
	keys       keyMap
	help       help.Model
	status     string

	homeCursor int
	login      form

	// dashboard
	focus      pane
	loanCursor int
	payCursor  int
	loanForm   *form
	search     textinput.Model
	searching  bool
	query      string
}

type pane int

const (
	paneLoans pane = iota
	panePayments
)

const (
	fieldActorID    = "id"
	fieldActorName  = "name"
	fieldActorEmail = "email"

	fieldBorrower = "borrower"
	fieldAmount   = "amount"
	fieldRate     = "rate"
	fieldTerm     = "term"
	fieldPurpose  = "purpose"
)

func New(ctx context.Context, ctrl *session.Controller, opts Options) *App {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "$"
	}
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "id or purpose"
	search.Cursor.SetMode(cursor.CursorStatic)
	return &App{
		ctx:        ctx,
		ctrl:       ctrl,
		journal:    opts.Journal,
		log:        opts.Log,
		currency:   opts.CurrencySymbol,
		dateFormat: opts.DateFormat,
		keys:       newKeyMap(),
		help:       help.New(),
		search:     search,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.update(msg)
	a.clampCursors()
	return model, cmd
}

// clampCursors keeps the dashboard selections inside the rows on screen.
func (a *App) clampCursors() {
	d, ok := a.ctrl.Dashboard()
	if !ok {
		return
	}
	loans := records.Search(d.Loans, a.query)
	a.loanCursor = min(a.loanCursor, max(len(loans)-1, 0))
	a.payCursor = min(a.payCursor, max(len(d.Payments)-1, 0))
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
	case tea.KeyMsg:
		if key.Matches(m, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		switch screen := a.ctrl.Screen(); screen.Kind {
		case session.ScreenHome:
			return a.handleHomeKey(m)
		case session.ScreenLogin:
			return a.handleLoginKey(m, screen.Role)
		case session.ScreenDashboard:
			return a.handleDashboardKey(m)
		default:
			return a.handleNoneKey(m)
		}
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
		a.log.Error("journal", zap.Error(m.error))
	}
	return a, nil
}

func (a *App) View() string {
	screen := a.ctrl.Screen()
	var body string
	switch screen.Kind {
	case session.ScreenHome:
		body = a.renderHome()
	case session.ScreenLogin:
		body = a.renderLogin(screen.Role)
	case session.ScreenDashboard:
		body = a.renderDashboard()
	default:
		return ""
	}
	if a.status != "" {
		body += "\n" + statusStyle.Render(a.status)
	}
	return body
}

func (a *App) handleHomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.homeCursor > 0 {
			a.homeCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.homeCursor < len(session.Roles)-1 {
			a.homeCursor++
		}
	case key.Matches(m, a.keys.Select):
		a.openLogin(session.Roles[a.homeCursor])
	default:
		s := m.String()
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(session.Roles) {
			a.homeCursor = int(s[0] - '1')
			a.openLogin(session.Roles[a.homeCursor])
		}
	}
	return a, nil
}

func (a *App) openLogin(role session.Role) {
	a.login = newForm(
		formField{Key: fieldActorID, Label: "ID", Placeholder: "numeric id"},
		formField{Key: fieldActorName, Label: "Name"},
		formField{Key: fieldActorEmail, Label: "Email"},
	)
	a.status = ""
	a.ctrl.Navigate(session.LoginView(role))
}

func (a *App) handleLoginKey(m tea.KeyMsg, role session.Role) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.status = ""
		a.ctrl.Navigate(session.ViewHome)
		return a, nil
	case "tab", "down":
		a.login.next(1)
		return a, nil
	case "shift+tab", "up":
		a.login.next(-1)
		return a, nil
	case "enter":
		actor := session.Actor{
			ID:    records.ParseWhole(a.login.value(fieldActorID)),
			Name:  strings.TrimSpace(a.login.value(fieldActorName)),
			Email: strings.TrimSpace(a.login.value(fieldActorEmail)),
		}
		a.ctrl.Login(role, actor)
		a.resetDashboard()
		return a, nil
	}
	return a, a.login.update(m)
}

func (a *App) resetDashboard() {
	a.focus = paneLoans
	a.loanCursor, a.payCursor = 0, 0
	a.loanForm = nil
	a.searching = false
	a.query = ""
	a.search.SetValue("")
	a.status = ""
}

func (a *App) handleNoneKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.ctrl.Navigate(session.ViewHome)
	}
	return a, nil
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.loanForm != nil {
		return a.handleLoanFormKey(m)
	}
	if a.searching {
		return a.handleSearchKey(m)
	}
	d, _ := a.ctrl.Dashboard()
	loans := records.Search(d.Loans, a.query)

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Logout):
		a.ctrl.Logout()
		a.resetDashboard()
	case key.Matches(m, a.keys.Switch):
		if d.Caps.Has(session.CanViewPayments) {
			if a.focus == paneLoans {
				a.focus = panePayments
			} else {
				a.focus = paneLoans
			}
		}
	case key.Matches(m, a.keys.Up):
		if a.focus == panePayments {
			if a.payCursor > 0 {
				a.payCursor--
			}
		} else if a.loanCursor > 0 {
			a.loanCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.focus == panePayments {
			if a.payCursor < len(d.Payments)-1 {
				a.payCursor++
			}
		} else if a.loanCursor < len(loans)-1 {
			a.loanCursor++
		}
	case key.Matches(m, a.keys.Search):
		a.searching = true
		a.search.SetValue(a.query)
		a.search.CursorEnd()
		a.search.Focus()
	case key.Matches(m, a.keys.Back):
		a.query = ""
		a.loanCursor = 0
	case key.Matches(m, a.keys.NewLoan):
		if d.Caps.Has(session.CanAddLoan) {
			a.openLoanForm()
		}
	case key.Matches(m, a.keys.Process):
		if !d.Caps.Has(session.CanProcessPayment) || a.focus != panePayments || a.payCursor >= len(d.Payments) {
			return a, nil
		}
		p, ok := a.ctrl.ProcessPayment(d.Payments[a.payCursor].ID)
		if !ok {
			return a, nil
		}
		a.status = fmt.Sprintf("payment %s processed (%s)", p.ID, p.TransactionID)
		return a, a.paymentProcessedCmd(p)
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.search.Blur()
		a.query = ""
		a.loanCursor = 0
		return a, nil
	case tea.KeyEnter:
		a.searching = false
		a.search.Blur()
		a.query = strings.TrimSpace(a.search.Value())
		a.loanCursor = 0
		a.focus = paneLoans
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	return a, cmd
}

func (a *App) openLoanForm() {
	f := newForm(
		formField{Key: fieldBorrower, Label: "Borrower ID"},
		formField{Key: fieldAmount, Label: "Amount"},
		formField{Key: fieldRate, Label: "Interest rate %"},
		formField{Key: fieldTerm, Label: "Term (months)"},
		formField{Key: fieldPurpose, Label: "Purpose"},
	)
	a.loanForm = &f
	a.status = ""
}

// loanInput collects the form with its computed monthly payment.
func (a *App) loanInput() records.LoanInput {
	f := a.loanForm
	in := records.LoanInput{
		BorrowerID:   f.value(fieldBorrower),
		Amount:       f.value(fieldAmount),
		InterestRate: f.value(fieldRate),
		Term:         f.value(fieldTerm),
		Purpose:      strings.TrimSpace(f.value(fieldPurpose)),
	}
	in.MonthlyPayment = records.MonthlyPayment(records.ParseAmount(in.Amount), records.ParseAmount(in.InterestRate), records.ParseWhole(in.Term))
	return in
}

func (a *App) handleLoanFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.loanForm = nil
		return a, nil
	case "tab", "down":
		a.loanForm.next(1)
		return a, nil
	case "shift+tab", "up":
		a.loanForm.next(-1)
		return a, nil
	case "enter":
		in := a.loanInput()
		a.loanForm = nil
		loan, ok := a.ctrl.AddLoan(in)
		if !ok {
			return a, nil
		}
		a.status = "loan " + loan.ID + " added"
		return a, a.loanAddedCmd(loan)
	}
	return a, a.loanForm.update(m)
}

// commands
func (a *App) loanAddedCmd(loan records.Loan) tea.Cmd {
	if a.journal == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.journal.LoanAdded(a.ctx, loan); err != nil {
			return errMsg{err}
		}
		return statusMsg("loan " + loan.ID + " saved")
	}
}

func (a *App) paymentProcessedCmd(p records.Payment) tea.Cmd {
	if a.journal == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.journal.PaymentProcessed(a.ctx, p); err != nil {
			return errMsg{err}
		}
		return statusMsg("payment " + p.ID + " saved")
	}
}

// messages
type statusMsg string

type errMsg struct{ error }
