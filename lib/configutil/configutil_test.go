package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	URL       string `json:"url"`
	TermIndex int    `json:"term_index"`
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scout.json5")
	err := os.WriteFile(path, []byte(`{url: "https://example.com", term_index: 2}`), 0o644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{URL: "https://example.com", TermIndex: 2}, cfg)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, "scout.json5"),
		[]byte(`{url: "https://example.com", term_index: 2}`),
		0o644,
	)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "scout.local.json5"),
		[]byte(`{term_index: 4}`),
		0o644,
	)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "scout.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.URL)
	require.Equal(t, 4, cfg.TermIndex)
}

func TestSplitExt(t *testing.T) {
	testCases := []struct {
		input  string
		prefix string
		ext    string
	}{
		{"config.json5", "config", "json5"},
		{"noext", "noext", ""},
		{"a.b.c", "a.b", "c"},
	}

	for _, test := range testCases {
		prefix, ext := splitExt(test.input)
		require.Equal(t, test.prefix, prefix)
		require.Equal(t, test.ext, ext)
	}
}
