package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tmp := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv(EnvName, "test")

	xdg.Reload()

	require.NoError(t, Initialize())

	assert.Equal(t, "slumber", Dir())
	assert.Equal(
		t,
		filepath.Join(tmp, "config", "slumber", "config_test.yml"),
		ConfigFilePath(),
	)
	assert.Equal(
		t,
		filepath.Join(tmp, "data", "slumber", "slumber_test.db"),
		DBFilePath("bolt"),
	)
	assert.Equal(
		t,
		filepath.Join(tmp, "data", "slumber", "slumber_test.sqlite"),
		DBFilePath("sqlite"),
	)
	assert.Equal(
		t,
		filepath.Join(tmp, "data", "slumber", "log", "slumber_test.log"),
		LogFilePath(),
	)
}
