package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	Key         string
	Label       string
	Placeholder string
}

// form is a column of text inputs with tab focus cycling.
type form struct {
	fields []formField
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...formField) form {
	inputs := make([]textinput.Model, 0, len(fields))
	for i, f := range fields {
		inp := textinput.New()
		inp.Prompt = f.Label + ": "
		inp.Placeholder = f.Placeholder
		inp.Cursor.SetMode(cursor.CursorStatic)
		if i == 0 {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	return form{fields: fields, inputs: inputs}
}

// next moves focus by dir, wrapping around.
func (f *form) next(dir int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) value(key string) string {
	for i, fld := range f.fields {
		if fld.Key == key {
			return f.inputs[i].Value()
		}
	}
	return ""
}

func (f form) view() string {
	lines := make([]string, 0, len(f.inputs))
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	return strings.Join(lines, "\n")
}
