package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/etc/ax.yaml", Path(env(map[string]string{"AXCORE_CONFIG": "/etc/ax.yaml", "XDG_CONFIG_HOME": "/x"})))
	assert.Equal(t, filepath.Join("/x", "axcore", "config.yaml"), Path(env(map[string]string{"XDG_CONFIG_HOME": "/x"})))
	assert.Equal(t, filepath.Join("/home/u", ".config", "axcore", "config.yaml"), Path(env(map[string]string{"HOME": "/home/u"})))
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\ntimeout: 1500ms\nkey_rate: slow\nprompt: true\ndepth: 4\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Format:  "json",
		Timeout: 1500 * time.Millisecond,
		KeyRate: "slow",
		Prompt:  true,
		Depth:   4,
	}, cfg)
}

func TestLoad_KeepsDefaultsForUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("depth: 2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.KeyRate)
	assert.Equal(t, 2, cfg.Depth)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":   "format: [\n",
		"format":   "format: xml\n",
		"key_rate": "key_rate: warp\n",
		"depth":    "depth: -1\n",
		"timeout":  "timeout: -1s\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
