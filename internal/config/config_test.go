package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[engine]
threshold = 0.25

[log]
sqlite = "/tmp/avaliacoes.db"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Engine.Threshold)
	assert.Equal(t, "/tmp/avaliacoes.db", cfg.Log.SQLite)
	assert.Equal(t, "resultado_avaliacoes.csv", cfg.Log.CSV)
	assert.Equal(t, "Dados.csv", cfg.Data.Attributes)
	assert.Equal(t, "float_input", cfg.ONNX.Input)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine\nthreshold="), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NANDADX_THRESHOLD", "0.3")
	t.Setenv("NANDADX_MODEL", "arvore.json")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Engine.Threshold)
	assert.Equal(t, "arvore.json", cfg.Data.Model)

	t.Setenv("NANDADX_THRESHOLD", "alto")
	_, err = Load(filepath.Join(t.TempDir(), "none.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Threshold = 1
	cfg.Data.Model = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.threshold")
	assert.Contains(t, err.Error(), "data.model")
}

func TestResolvePath(t *testing.T) {
	p, err := ResolvePath("/etc/x.toml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/x.toml", p)

	t.Setenv(EnvPath, "/env/config.toml")
	p, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, "/env/config.toml", p)

	dir := t.TempDir()
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	p, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nandadx", "config.toml"), p)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:9000"
	require.NoError(t, cfg.Save(path, false))

	assert.Error(t, cfg.Save(path, false), "refuses to overwrite")
	require.NoError(t, cfg.Save(path, true))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
