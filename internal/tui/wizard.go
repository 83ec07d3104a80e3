package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dhabedank/fitplan/internal/core"
	"github.com/dhabedank/fitplan/internal/wizard"
)

// WizardModel is the bubbletea view over a wizard.Wizard.
type WizardModel struct {
	w         *wizard.Wizard
	list      list.Model
	delegate  list.DefaultDelegate
	submitted bool
	cancelled bool
	exited    bool
	err       string
	width     int
	height    int
}

type optionItem struct {
	opt   wizard.Option
	multi bool
}

func (o optionItem) Title() string {
	if o.multi {
		box := "[ ]"
		if o.opt.Selected {
			box = "[x]"
		}
		return box + " " + o.opt.Label
	}
	if o.opt.Selected {
		return "● " + o.opt.Label
	}
	return "○ " + o.opt.Label
}

func (o optionItem) Description() string { return o.opt.Description }
func (o optionItem) FilterValue() string { return o.opt.Label }

// NewWizardModel builds the form starting from profile.
func NewWizardModel(profile core.UserProfile) WizardModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("#9b59b6"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("#95a5a6"))

	m := WizardModel{
		w:        wizard.NewWithProfile(profile),
		delegate: delegate,
		width:    60,
		height:   18,
	}
	m.list = m.buildList()
	return m
}

func (m WizardModel) buildList() list.Model {
	step := m.w.Step()
	opts := m.w.Options()

	items := make([]list.Item, len(opts))
	cursor := 0
	for i, o := range opts {
		items[i] = optionItem{opt: o, multi: step.MultiSelect()}
		if o.Selected && !step.MultiSelect() {
			cursor = i
		}
	}

	l := list.New(items, m.delegate, m.width, m.height-4)
	l.Title = step.Title()
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle
	l.Select(cursor)
	return l
}

// refresh rebuilds the items in place, keeping the cursor.
func (m *WizardModel) refresh() {
	idx := m.list.Index()
	m.list = m.buildList()
	m.list.Select(idx)
}

// Profile returns the collected profile and whether the form was submitted.
func (m WizardModel) Profile() (core.UserProfile, bool) {
	return m.w.Profile(), m.submitted
}

// Cancelled reports whether the user quit the form.
func (m WizardModel) Cancelled() bool {
	return m.cancelled
}

// Exited reports whether the user backed out of the first step.
func (m WizardModel) Exited() bool {
	return m.exited
}

// Init implements tea.Model.
func (m WizardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		m.err = ""
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit

		case " ", "space", "x":
			if m.w.Step().MultiSelect() {
				m.selectCurrent()
				return m, nil
			}

		case "enter":
			if !m.w.Step().MultiSelect() {
				if !m.selectCurrent() {
					return m, nil
				}
			}
			switch m.w.Next() {
			case wizard.Submit:
				m.submitted = true
				return m, tea.Quit
			case wizard.Advance:
				m.list = m.buildList()
			}
			return m, nil

		case "left", "h", "esc":
			switch m.w.Previous() {
			case wizard.Exit:
				m.exited = true
				return m, tea.Quit
			case wizard.Back:
				m.list = m.buildList()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *WizardModel) selectCurrent() bool {
	item, ok := m.list.SelectedItem().(optionItem)
	if !ok {
		return false
	}
	if err := m.w.Select(item.opt.Value); err != nil {
		m.err = err.Error()
		return false
	}
	m.refresh()
	return true
}

// View implements tea.Model.
func (m WizardModel) View() string {
	if m.cancelled || m.exited {
		return ""
	}

	current := m.w.Step()
	progress := "\n  "
	for i := 0; i < wizard.TotalSteps; i++ {
		s := wizard.Step(i)
		if s == current {
			progress += SelectedStyle.Render(fmt.Sprintf("[%s]", s.Name()))
		} else if s < current {
			progress += SuccessStyle.Render(fmt.Sprintf("✓ %s", s.Name()))
		} else {
			progress += UnselectedStyle.Render(fmt.Sprintf("○ %s", s.Name()))
		}
		if i < wizard.TotalSteps-1 {
			progress += " → "
		}
	}
	progress += "\n  " + HelpStyle.Render(m.w.Progress().String()) + "\n\n"

	keys := "↑/↓: navigate • enter: select • ←: back • q: quit"
	if current.MultiSelect() {
		keys = "↑/↓: navigate • space: toggle • enter: continue • ←: back • q: quit"
	}
	if current == wizard.StepDuration {
		keys = "↑/↓: navigate • enter: generate my plan • ←: back • q: quit"
	}
	help := HelpStyle.Render("\n  " + keys)

	errLine := ""
	if m.err != "" {
		errLine = "\n  " + ErrorStyle.Render(m.err)
	}

	return progress + m.list.View() + errLine + help
}

// RunWizard shows the form and returns the submitted profile. ok is false
// when the user quit or backed out.
func RunWizard(initial core.UserProfile) (profile core.UserProfile, ok bool, err error) {
	p := tea.NewProgram(NewWizardModel(initial))
	m, err := p.Run()
	if err != nil {
		return core.UserProfile{}, false, fmt.Errorf("wizard failed: %w", err)
	}

	final := m.(WizardModel)
	profile, ok = final.Profile()
	return profile, ok, nil
}
