package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/loanboard/internal/records"
	"github.com/jask/loanboard/internal/session"
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var roleColor = map[session.Role]lipgloss.Color{
	session.RoleBorrower: lipgloss.Color("33"),
	session.RoleLender:   lipgloss.Color("34"),
	session.RoleAdmin:    lipgloss.Color("135"),
	session.RoleAnalyst:  lipgloss.Color("208"),
}

func roleStyle(r session.Role) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(roleColor[r])
}

func (a *App) renderHome() string {
	out := titleStyle.Render("Loan Management System") + "\n"
	out += subtleStyle.Render("Select your login type") + "\n\n"
	for i, r := range session.Roles {
		marker := " "
		if i == a.homeCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %d. %s\n     %s\n", marker, i+1, roleStyle(r).Render(r.Title()+" Login"), subtleStyle.Render(r.Blurb()))
	}
	out += "\n" + a.help.ShortHelpView([]key.Binding{a.keys.Up, a.keys.Down, a.keys.Select, a.keys.Quit})
	return out
}

func (a *App) renderLogin(role session.Role) string {
	out := roleStyle(role).Render(role.Title()+" Login") + "\n\n"
	out += a.login.view() + "\n\n"
	out += a.help.ShortHelpView([]key.Binding{a.keys.NextFld, a.keys.Submit, a.keys.Back})
	return out
}

func (a *App) renderDashboard() string {
	d, ok := a.ctrl.Dashboard()
	if !ok {
		return ""
	}
	name := d.Actor.Name
	if name == "" {
		name = fmt.Sprintf("#%d", d.Actor.ID)
	}
	out := roleStyle(d.Role).Render(d.Role.Title()+" Dashboard") + "  " + subtleStyle.Render("signed in as "+name) + "\n"
	out += a.renderSummary(d) + "\n\n"

	loans := records.Search(d.Loans, a.query)
	heading := "Loans"
	if a.query != "" {
		heading += fmt.Sprintf(" matching %q (%d)", a.query, len(loans))
	}
	out += titleStyle.Render(heading) + "\n"
	if len(loans) == 0 {
		out += subtleStyle.Render("  (no loans)") + "\n"
	} else {
		out += a.loanTable(loans, a.focus == paneLoans) + "\n"
	}

	if d.Caps.Has(session.CanViewPayments) {
		out += "\n" + titleStyle.Render("Payments") + "\n"
		if len(d.Payments) == 0 {
			out += subtleStyle.Render("  (no payments)") + "\n"
		} else {
			out += a.paymentTable(d.Payments, a.focus == panePayments) + "\n"
		}
	}

	if a.searching {
		out += "\n" + a.search.View() + "\n"
	}
	if a.loanForm != nil {
		out += "\n" + a.renderLoanForm() + "\n"
	}
	out += "\n" + a.help.ShortHelpView(a.dashboardBindings(d.Caps))
	return out
}

func (a *App) dashboardBindings(caps session.Capabilities) []key.Binding {
	if a.loanForm != nil {
		return []key.Binding{a.keys.NextFld, a.keys.Submit, a.keys.Back}
	}
	bindings := []key.Binding{a.keys.Up, a.keys.Down, a.keys.Search}
	if caps.Has(session.CanViewPayments) {
		bindings = append(bindings, a.keys.Switch)
	}
	if caps.Has(session.CanProcessPayment) {
		bindings = append(bindings, a.keys.Process)
	}
	if caps.Has(session.CanAddLoan) {
		bindings = append(bindings, a.keys.NewLoan)
	}
	return append(bindings, a.keys.Logout, a.keys.Quit)
}

func (a *App) renderSummary(d session.Dashboard) string {
	var outstanding float64
	active := 0
	for _, l := range d.Loans {
		if l.Status != records.LoanActive {
			continue
		}
		active++
		if !math.IsNaN(l.RemainingBalance) {
			outstanding += l.RemainingBalance
		}
	}
	out := fmt.Sprintf("Loans: %d  Active: %d  Outstanding: %s", len(d.Loans), active, a.money(outstanding))
	if d.Caps.Has(session.CanViewPayments) {
		pending, completed := 0, 0
		for _, p := range d.Payments {
			if p.Status == records.PaymentCompleted {
				completed++
			} else {
				pending++
			}
		}
		out += fmt.Sprintf("  Payments pending: %d  completed: %d", pending, completed)
	}
	return out
}

func (a *App) renderLoanForm() string {
	in := a.loanInput()
	body := titleStyle.Render("New loan") + "\n" + a.loanForm.view() + "\n"
	body += subtleStyle.Render("Monthly payment: "+a.money(in.MonthlyPayment)) + "\n"
	body += "[enter] Create  [tab] Next field  [esc] Cancel"
	return modalStyle.Render(body)
}

func (a *App) loanTable(loans []records.Loan, focused bool) string {
	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, []string{
			l.ID,
			strconv.Itoa(l.BorrowerID),
			strconv.Itoa(l.LenderID),
			a.money(l.Amount),
			percent(l.InterestRate),
			fmt.Sprintf("%dm", l.TermMonths),
			string(l.Status),
			l.Purpose,
			a.money(l.MonthlyPayment),
			a.money(l.RemainingBalance),
			a.date(l.NextPaymentDate),
		})
	}
	return renderTable([]string{"ID", "Borrower", "Lender", "Amount", "Rate", "Term", "Status", "Purpose", "Monthly", "Balance", "Next due"}, rows, a.loanCursor, focused)
}

func (a *App) paymentTable(payments []records.Payment, focused bool) string {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		paid := ""
		if p.Date != nil {
			paid = a.date(*p.Date)
		}
		rows = append(rows, []string{
			p.ID,
			p.LoanID,
			a.money(p.Amount),
			a.date(p.DueDate),
			string(p.Status),
			paid,
			p.Method,
			p.TransactionID,
		})
	}
	return renderTable([]string{"ID", "Loan", "Amount", "Due", "Status", "Paid", "Method", "Transaction"}, rows, a.payCursor, focused)
}

func renderTable(headers []string, rows [][]string, cursor int, focused bool) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if focused && row == cursor {
				return selectedStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Render()
}

func (a *App) money(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%s%.2f", a.currency, v)
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".") + "%"
}

func (a *App) date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(a.dateFormat)
}
