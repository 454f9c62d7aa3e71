package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_ExplicitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o640))

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })

	require.NoError(t, initConfig(nil, nil))
	require.Equal(t, "debug", viper.GetString("logging.level"))
}

func TestInitConfig_ExplicitConfigFileMissing(t *testing.T) {
	cfgFile = filepath.Join(t.TempDir(), "nope.yaml")
	t.Cleanup(func() { cfgFile = "" })

	require.Error(t, initConfig(nil, nil))
}
