package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAskInput(t *testing.T) {
	in := NewAskInput(nil)

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
	assert.True(t, in.Focused())
	assert.Equal(t, "", in.Value())
	assert.Equal(t, 50, in.Width())
}

func TestAskInput_Typing(t *testing.T) {
	in := NewAskInput(nil)

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cats")})

	assert.Equal(t, "cats", in.Value())
}

func TestAskInput_SetValueAndReset(t *testing.T) {
	in := NewAskInput(nil)

	in.SetValue("where is the mat?")
	assert.Equal(t, "where is the mat?", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())
}

func TestAskInput_FocusBlur(t *testing.T) {
	in := NewAskInput(nil)

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestAskInput_SetWidth(t *testing.T) {
	in := NewAskInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 90, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)
}

func TestAskInput_View(t *testing.T) {
	in := NewAskInput(nil)

	assert.Contains(t, in.View(), "Ask:")
}
