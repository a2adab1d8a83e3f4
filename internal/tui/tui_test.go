package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/jacketvid/internal/config"
	"github.com/handiism/jacketvid/internal/pipeline"
)

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_TogglesOnlyWhenOptionsFocused(t *testing.T) {
	m := NewModel(config.DefaultSettings())

	m = press(t, m, runeKey('u'))
	if m.upload {
		t.Error("typing into the folder field must not toggle upload")
	}
	if m.textInput.Value() != "u" {
		t.Errorf("folder field = %q, want %q", m.textInput.Value(), "u")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runeKey('u'), runeKey('a'), runeKey('p'), runeKey('s'), runeKey('v'))
	if !m.upload || !m.exportAudio || !m.playlist || !m.strictImages || !m.verbose {
		t.Errorf("options not toggled: %+v", m)
	}
	if m.textInput.Value() != "u" {
		t.Errorf("folder field changed while options focused: %q", m.textInput.Value())
	}

	s := m.runSettings()
	if !s.Upload || !s.ExportAudio || !s.CreatePlaylist || !s.AbortOnImageError || !s.Verbose {
		t.Errorf("runSettings() = %+v", s)
	}
	if m.settings.Upload {
		t.Error("runSettings must not modify the base settings")
	}
}

func TestModel_LogTail(t *testing.T) {
	m := NewModel(nil)

	for i := 0; i < maxLogs+5; i++ {
		m.appendLog(pipeline.ProgressEvent{Message: fmt.Sprintf("event %d", i), Level: pipeline.LevelInfo})
	}
	m.appendLog(pipeline.ProgressEvent{Message: "hidden", Level: pipeline.LevelVerbose})

	if len(m.logs) != maxLogs {
		t.Fatalf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
	if m.logs[0].Message != "event 5" {
		t.Errorf("oldest log = %q, want %q", m.logs[0].Message, "event 5")
	}
	if strings.Contains(m.renderLogs(), "hidden") {
		t.Error("verbose events must be filtered unless verbose is on")
	}
}

func TestRenderOptions_NeverVerbose(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runeKey('v'))

	s := m.runSettings()
	if !s.Verbose {
		t.Fatal("verbose toggle should enable verbose events")
	}
	if renderOptions(s).Verbose {
		t.Error("ffmpeg output must not be written to the terminal under the TUI")
	}
}
