package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLoadingModelReportsTaskResult(t *testing.T) {
	want := errors.New("boom")
	m := NewLoading(context.Background(), "", func(ctx context.Context) error { return want })

	if got := m.View(); got == "" {
		t.Fatal("expected a loading view")
	}

	msg := m.run()
	_, cmd := m.Update(msg)
	if !isQuit(cmd) {
		t.Error("expected quit after task finished")
	}
	if !errors.Is(m.Err(), want) {
		t.Errorf("Err() = %v, want %v", m.Err(), want)
	}
}

func TestLoadingModelCancel(t *testing.T) {
	var taskCtx context.Context
	m := NewLoading(context.Background(), "Working", func(ctx context.Context) error {
		taskCtx = ctx
		return nil
	})
	m.run()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Error("expected quit on ctrl+c")
	}
	if !errors.Is(m.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", m.Err())
	}
	if taskCtx.Err() == nil {
		t.Error("task context should be cancelled")
	}
}
