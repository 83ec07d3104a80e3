package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultLoadingMessage is shown while plans are generated.
const DefaultLoadingMessage = "Generating your personalized plans..."

type taskDoneMsg struct {
	err error
}

// LoadingModel shows a spinner while a task runs, then quits. Pressing q or
// ctrl+c cancels the task's context.
type LoadingModel struct {
	spinner   spinner.Model
	message   string
	task      func(ctx context.Context) error
	ctx       context.Context
	cancel    context.CancelFunc
	start     time.Time
	elapsed   time.Duration
	done      bool
	cancelled bool
	err       error
}

// NewLoading creates a loading model for task.
func NewLoading(ctx context.Context, message string, task func(ctx context.Context) error) *LoadingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	if message == "" {
		message = DefaultLoadingMessage
	}
	ctx, cancel := context.WithCancel(ctx)

	return &LoadingModel{
		spinner: s,
		message: message,
		task:    task,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Err returns the task's error, or context.Canceled if the user quit.
func (m *LoadingModel) Err() error {
	if m.cancelled {
		return context.Canceled
	}
	return m.err
}

// Elapsed is how long the task ran.
func (m *LoadingModel) Elapsed() time.Duration {
	return m.elapsed
}

// Init implements tea.Model.
func (m *LoadingModel) Init() tea.Cmd {
	m.start = time.Now()
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m *LoadingModel) run() tea.Msg {
	return taskDoneMsg{err: m.task(m.ctx)}
}

// Update implements tea.Model.
func (m *LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}

	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		m.elapsed = time.Since(m.start)
		m.cancel()
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m *LoadingModel) View() string {
	switch {
	case m.cancelled:
		return WarningStyle.Render("Cancelled") + "\n"
	case m.done && m.err != nil:
		return ErrorStyle.Render("✗ "+m.err.Error()) + "\n"
	case m.done:
		return fmt.Sprintf("%s %s\n", SuccessStyle.Render("✓"), HelpStyle.Render(m.elapsed.Truncate(time.Second).String()))
	}

	elapsed := time.Since(m.start).Truncate(time.Second)
	return fmt.Sprintf("%s %s  %s\n  %s\n",
		m.spinner.View(),
		m.message,
		HelpStyle.Render(elapsed.String()),
		HelpStyle.Render("This usually takes 10-30 seconds • q: cancel"),
	)
}

// RunWithSpinner runs task behind a spinner and returns its error.
func RunWithSpinner(ctx context.Context, message string, task func(ctx context.Context) error) error {
	m := NewLoading(ctx, message, task)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("spinner failed: %w", err)
	}
	return m.Err()
}
