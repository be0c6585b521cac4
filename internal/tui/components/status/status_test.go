package status

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_MessageLifecycle(t *testing.T) {
	c := New()
	c.SetSize(60, 1)

	cmd := c.ShowError("2 fields need attention")
	require.NotNil(t, cmd)
	require.NotNil(t, c.Message())
	assert.Contains(t, ansi.Strip(c.View()), "2 fields need attention")

	// A clear for an older message is ignored.
	c.Update(clearMessageMsg{})
	require.NotNil(t, c.Message())

	c.Update(clearMessageMsg{timestamp: c.Message().Timestamp})
	assert.Nil(t, c.Message())
}

func TestComponent_ZeroWidthRendersNothing(t *testing.T) {
	c := New()
	c.ShowSuccess("ok")
	assert.Empty(t, c.View())
}

func TestComponent_LeftContentAndMessage(t *testing.T) {
	c := New()
	c.SetSize(80, 1)
	c.SetLeftContent("2 fields")
	c.ShowSuccess("all valid")

	out := ansi.Strip(c.View())
	assert.Contains(t, out, "2 fields")
	assert.Contains(t, out, "✓ all valid")
}
