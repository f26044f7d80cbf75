package editor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorCmd_Precedence(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	t.Setenv("VISUAL", "code")
	assert.Equal(t, "nano", editorCmd())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "code", editorCmd())

	t.Setenv("VISUAL", "")
	assert.Equal(t, "vi", editorCmd())
}

func TestEdit_ReturnsSavedContent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as editor")
	}
	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'edited' > \"$1\"\n"), 0755))
	t.Setenv("EDITOR", script)

	out, err := Edit([]byte("original"), "form-*.md")
	require.NoError(t, err)
	assert.Equal(t, "edited", string(out))
}

func TestEdit_EditorFailure(t *testing.T) {
	t.Setenv("EDITOR", filepath.Join(t.TempDir(), "missing-editor"))
	_, err := Edit([]byte("x"), "form-*.md")
	assert.Error(t, err)
}
