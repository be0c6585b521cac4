package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/billie-coop/fieldstate/internal/field"
	"github.com/billie-coop/fieldstate/internal/tui/components/fieldinput"
	"github.com/billie-coop/fieldstate/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func required(v string) *string {
	if v == "" {
		return field.Invalid("required")
	}
	return nil
}

func newForm(t *testing.T, ctrls ...*fieldinput.Controller) *Model {
	t.Helper()
	fields := make([]*fieldinput.Model, len(ctrls))
	for i, c := range ctrls {
		fields[i] = fieldinput.New(fmt.Sprintf("field%d", i), c)
	}
	m := New(fields, WithTitle("Signup"))
	t.Cleanup(m.Close)
	return m
}

func press(m *Model, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeInto(m *Model, text string) {
	for _, r := range text {
		press(m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestModel_TypingGoesToFocusedField(t *testing.T) {
	first := field.New[string, string]("")
	second := field.New[string, string]("")
	m := newForm(t, first, second)

	typeInto(m, "ab")
	press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	typeInto(m, "cd")

	assert.Equal(t, "ab", first.State().Value())
	assert.Equal(t, "cd", second.State().Value())
}

func TestModel_FocusWraps(t *testing.T) {
	m := newForm(t, field.New[string, string](""), field.New[string, string](""))

	press(m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Same(t, m.fields[1], m.Focused())
	assert.False(t, m.fields[0].IsFocused())

	press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Same(t, m.fields[0], m.Focused())
}

func TestModel_ToggleReadOnly(t *testing.T) {
	ctrl := field.New[string, string]("x")
	m := newForm(t, ctrl)

	press(m, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	require.True(t, ctrl.State().ReadOnly())

	typeInto(m, "y")
	assert.Equal(t, "x", ctrl.State().Value())

	press(m, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	require.False(t, ctrl.State().ReadOnly())

	typeInto(m, "y")
	assert.Equal(t, "xy", ctrl.State().Value())
}

func TestModel_ToggleAutovalidate(t *testing.T) {
	ctrl := field.New[string, string]("a", field.WithValidator[string, string](required))
	m := newForm(t, ctrl)

	press(m, tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl})
	require.True(t, ctrl.State().Autovalidate())

	press(m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Equal(t, "", ctrl.State().Value())
	assert.False(t, ctrl.State().IsValid())

	press(m, tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl})
	assert.True(t, ctrl.State().IsValid())
}

func TestModel_SubmitValidatesAll(t *testing.T) {
	first := field.New[string, string]("", field.WithValidator[string, string](required))
	second := field.New[string, string]("ok", field.WithValidator[string, string](required))
	m := newForm(t, first, second)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	press(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.False(t, first.State().IsValid())
	assert.True(t, second.State().IsValid())
	require.NotNil(t, m.statusBar.Message())
	assert.Equal(t, "1 invalid field", m.statusBar.Message().Content)

	out := ansi.Strip(m.render())
	assert.Contains(t, out, "Signup")
	assert.Contains(t, out, "✗ required")
}

func TestModel_SubmitAllValid(t *testing.T) {
	m := newForm(t, field.New[string, string]("ok", field.WithValidator[string, string](required)))

	press(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	require.NotNil(t, m.statusBar.Message())
	assert.Equal(t, "all fields valid", m.statusBar.Message().Content)
}

func TestModel_ChangesReachProgram(t *testing.T) {
	ctrl := field.New[string, string]("")
	m := newForm(t, ctrl)

	listen := m.listenForChanges()
	ctrl.SetError("boom")

	msg := listen()
	require.Equal(t, FieldChangedMsg{FieldID: ctrl.ID()}, msg)

	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "keeps listening")
	assert.Contains(t, ansi.Strip(m.render()), "✗ boom")
}

func TestModel_AsyncResultUpdatesSummary(t *testing.T) {
	ctrl := field.New[string, string]("",
		field.WithDebounce[string, string](20*time.Millisecond),
		field.WithAsyncValidator[string, string](func(_ context.Context, v string) *string {
			if v == "taken" {
				return field.Invalid("already taken")
			}
			return nil
		}),
	)
	m := newForm(t, ctrl)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})

	typeInto(m, "taken")

	require.Eventually(t, func() bool {
		return !ctrl.Validating() && !ctrl.State().IsValid()
	}, time.Second, 5*time.Millisecond)

	m.refreshSummary()
	assert.Contains(t, ansi.Strip(m.statusBar.View()), "field0 ✗")
}

func TestModel_HelpToggle(t *testing.T) {
	m := newForm(t, field.New[string, string](""))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	press(m, tea.KeyPressMsg{Code: tea.KeyF1})
	assert.Contains(t, ansi.Strip(m.render()), "toggle read-only")

	press(m, tea.KeyPressMsg{Code: tea.KeyF1})
	assert.NotContains(t, ansi.Strip(m.render()), "toggle read-only")
}

func TestModel_ThemeCycle(t *testing.T) {
	styles.SetDefaultManager(styles.NewManager("ember"))
	t.Cleanup(func() { styles.SetDefaultManager(nil) })
	m := newForm(t, field.New[string, string](""))

	press(m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})

	assert.Equal(t, "slate", styles.CurrentTheme().Name)
	require.NotNil(t, m.statusBar.Message())
	assert.Equal(t, "theme: slate", m.statusBar.Message().Content)
}

func TestModel_QuitAndClose(t *testing.T) {
	m := newForm(t, field.New[string, string](""))

	cmd := press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m.Close()
	assert.Equal(t, 0, m.broker.Len())
	assert.Nil(t, m.listenForChanges()(), "closed subscription ends listening")
}
