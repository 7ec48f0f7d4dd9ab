package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFlagsAndApplyDefaults(t *testing.T) {
	cfg := Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlagsAndApplyDefaults("", fs)

	require.NoError(t, fs.Parse([]string{"-nowplaying.allow-custom-sources", "-nowplaying.request-timeout=3s"}))

	assert.Equal(t, All, cfg.Target)
	assert.Equal(t, 3080, cfg.Server.HTTPListenPort)
	assert.True(t, cfg.NowPlaying.AllowCustomSources)
	assert.Equal(t, 3*time.Second, cfg.NowPlaying.RequestTimeout)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
target: nowplaying
nowplaying:
  presets-file: /etc/nowplaying/presets.toml
  watch-presets: true
`), 0o644))

	cfg, err := LoadConfig(good)
	require.NoError(t, err)
	assert.Equal(t, NowPlaying, cfg.Target)
	assert.Equal(t, "/etc/nowplaying/presets.toml", cfg.NowPlaying.PresetsFile)
	assert.True(t, cfg.NowPlaying.WatchPresets)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ripper:\n  url: x\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}
