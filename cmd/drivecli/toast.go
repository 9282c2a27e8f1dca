package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// toast prints orchestrator feedback to the terminal, standing in for the
// web client's snackbar. It remembers whether an error was shown so
// commands can exit nonzero.
type toast struct {
	failed bool
}

func newToast() *toast {
	return &toast{}
}

func (t *toast) Success(msg string) {
	fmt.Println(successStyle.Render("✓ " + msg))
}

func (t *toast) Error(msg string) {
	t.failed = true
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+msg))
}

func (t *toast) Warning(msg string) {
	fmt.Println(warningStyle.Render("! " + msg))
}

func (t *toast) Info(msg string) {
	fmt.Println(infoStyle.Render(msg))
}

// err converts recorded failures into a command error.
func (t *toast) err() error {
	if t.failed {
		return fmt.Errorf("operation failed")
	}
	return nil
}
