package main

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sameOption(a, b tea.ProgramOption) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func hasOption(opts []tea.ProgramOption, want tea.ProgramOption) bool {
	for _, o := range opts {
		if sameOption(o, want) {
			return true
		}
	}
	return false
}

func TestProgramOptionsReportHoverMotion(t *testing.T) {
	opts := programOptions()

	if !hasOption(opts, tea.WithMouseAllMotion()) {
		t.Fatal("expected all-motion mouse reporting for button hover")
	}
	if hasOption(opts, tea.WithMouseCellMotion()) {
		t.Fatal("expected cell-motion mode to be off; it only reports drags")
	}
	if !hasOption(opts, tea.WithReportFocus()) {
		t.Fatal("expected focus reporting for renderer visibility")
	}
}
