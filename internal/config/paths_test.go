package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"single segment", "server", []string{"server"}, false},
		{"two segments", "server.port", []string{"server", "port"}, false},
		{"three segments", "assistant.model", []string{"assistant", "model"}, false},
		{"empty", "", nil, true},
		{"empty segment", "server..port", nil, true},
		{"trailing dot", "server.", nil, true},
		{"blocked __proto__", "foo.__proto__.bar", nil, true},
		{"blocked constructor", "constructor", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfigPath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGetValueAtPath(t *testing.T) {
	root := map[string]any{
		"server": map[string]any{
			"port": 8087,
		},
		"simple": "value",
	}

	val, ok := GetValueAtPath(root, []string{"server", "port"})
	require.True(t, ok)
	assert.Equal(t, 8087, val)

	_, ok = GetValueAtPath(root, []string{"server", "missing"})
	assert.False(t, ok)

	_, ok = GetValueAtPath(root, []string{"simple", "sub"})
	assert.False(t, ok)
}

func TestSetValueAtPath(t *testing.T) {
	root := map[string]any{}

	SetValueAtPath(root, []string{"assistant", "model"}, "gemini-2.5-pro")
	val, ok := GetValueAtPath(root, []string{"assistant", "model"})
	require.True(t, ok)
	assert.Equal(t, "gemini-2.5-pro", val)

	SetValueAtPath(root, []string{"assistant", "model"}, "gemini-2.5-flash-lite")
	val, _ = GetValueAtPath(root, []string{"assistant", "model"})
	assert.Equal(t, "gemini-2.5-flash-lite", val)
}

func TestUnsetValueAtPath(t *testing.T) {
	root := map[string]any{
		"server": map[string]any{
			"port": 8087,
			"bind": "loopback",
		},
	}

	assert.True(t, UnsetValueAtPath(root, []string{"server", "port"}))
	_, found := GetValueAtPath(root, []string{"server", "port"})
	assert.False(t, found)

	val, found := GetValueAtPath(root, []string{"server", "bind"})
	require.True(t, found)
	assert.Equal(t, "loopback", val)

	assert.False(t, UnsetValueAtPath(root, []string{"server", "port"}))
	assert.False(t, UnsetValueAtPath(root, []string{"a", "b"}))
}

func TestResolvePaths(t *testing.T) {
	t.Setenv("PARAGONY_HOME", "/tmp/paragony-test")

	paths, err := ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/paragony-test", paths.Base)
	assert.Equal(t, "/tmp/paragony-test/config.yaml", paths.Config)
	assert.Equal(t, "/tmp/paragony-test/data", paths.Data)
	assert.Equal(t, "/tmp/paragony-test/logs", paths.Logs)
}

func TestResolvePathsDefault(t *testing.T) {
	t.Setenv("PARAGONY_HOME", "")

	paths, err := ResolvePaths()
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".paragony"), paths.Base)
}

func TestEnsureDirs(t *testing.T) {
	tmp := t.TempDir()
	paths := Paths{
		Base: tmp,
		Data: filepath.Join(tmp, "data"),
		Logs: filepath.Join(tmp, "logs"),
	}

	require.NoError(t, paths.EnsureDirs())
	require.NoError(t, paths.EnsureDirs())

	for _, dir := range []string{paths.Data, paths.Logs} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
