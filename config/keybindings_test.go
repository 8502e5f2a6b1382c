package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActionKey(t *testing.T) {
	kb := DefaultKeybindings()

	assert.Equal(t, "enter", kb.GetActionKey("send"))
	assert.Equal(t, "ctrl+r", kb.GetActionKey("retry"))
	assert.Equal(t, "", kb.GetActionKey("no_such_action"))

	kb.Modifiers.Primary = "alt"
	assert.Equal(t, "alt+r", kb.GetActionKey("retry"))

	kb.Actions = map[string]string{"retry": "f5"}
	assert.Equal(t, "f5", kb.GetActionKey("retry"))
	assert.True(t, kb.Matches("f5", "retry"))
	assert.False(t, kb.Matches("alt+r", "retry"))
}

func TestDisplayActionKey(t *testing.T) {
	kb := DefaultKeybindings()
	assert.Equal(t, "Ctrl+R", kb.DisplayActionKey("retry"))
	assert.Equal(t, "Enter", kb.DisplayActionKey("send"))
}

func TestLoadKeybindings(t *testing.T) {
	dir := t.TempDir()

	kb, err := LoadKeybindings(dir)
	require.NoError(t, err)
	assert.Equal(t, "ctrl", kb.Primary())
	assert.FileExists(t, filepath.Join(dir, "keybindings.toml"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "keybindings.toml"), []byte(`
[modifiers]
primary = "alt"

[actions]
quit = "ctrl+c"
`), 0600))

	kb, err = LoadKeybindings(dir)
	require.NoError(t, err)
	assert.Equal(t, "alt+l", kb.GetActionKey("clear"))
	assert.Equal(t, "ctrl+c", kb.GetActionKey("quit"))
}

func TestActionsSorted(t *testing.T) {
	names := Actions()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
}
