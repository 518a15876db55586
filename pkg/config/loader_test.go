package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelsuite/tenancy/pkg/config"
)

type testConfigDefault struct {
	Name    string `env:"CFG_TEST_NAME_DEFAULT" envDefault:"default_value"`
	Port    int    `env:"CFG_TEST_PORT_DEFAULT" envDefault:"42"`
	Enabled bool   `env:"CFG_TEST_ENABLED_DEFAULT" envDefault:"true"`
}

type testConfigSuccess struct {
	Name    string `env:"CFG_TEST_NAME_SUCCESS" envDefault:"default_value"`
	Port    int    `env:"CFG_TEST_PORT_SUCCESS" envDefault:"42"`
	Enabled bool   `env:"CFG_TEST_ENABLED_SUCCESS" envDefault:"true"`
}

type testConfigSingleton struct {
	Name string `env:"CFG_TEST_NAME_SINGLETON" envDefault:"default_value"`
}

type testConfigParse struct {
	Name string `env:"CFG_TEST_NAME_PARSE" envDefault:"default_value"`
}

type testConfigRequired struct {
	Required string `env:"CFG_TEST_REQUIRED,required"`
}

type testConfigEnvFile struct {
	FromFile string `env:"CFG_TEST_FROM_FILE"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("CFG_TEST_NAME_SUCCESS", "test_value")
	t.Setenv("CFG_TEST_PORT_SUCCESS", "100")
	t.Setenv("CFG_TEST_ENABLED_SUCCESS", "false")

	var cfg testConfigSuccess
	err := config.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "test_value", cfg.Name)
	assert.Equal(t, 100, cfg.Port)
	assert.False(t, cfg.Enabled)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("CFG_TEST_NAME_DEFAULT")
	os.Unsetenv("CFG_TEST_PORT_DEFAULT")
	os.Unsetenv("CFG_TEST_ENABLED_DEFAULT")

	var cfg testConfigDefault
	err := config.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "default_value", cfg.Name)
	assert.Equal(t, 42, cfg.Port)
	assert.True(t, cfg.Enabled)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("CFG_TEST_REQUIRED")

	var cfg testConfigRequired
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Run("recovers once the variable is set", func(t *testing.T) {
		t.Setenv("CFG_TEST_REQUIRED", "present")

		var cfg testConfigRequired
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "present", cfg.Required)
	})
}

func TestLoad_Singleton(t *testing.T) {
	t.Setenv("CFG_TEST_NAME_SINGLETON", "first_value")

	var first testConfigSingleton
	require.NoError(t, config.Load(&first))

	t.Setenv("CFG_TEST_NAME_SINGLETON", "second_value")

	var second testConfigSingleton
	require.NoError(t, config.Load(&second))

	assert.Equal(t, "first_value", second.Name, "second load should be served from cache")
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *testConfigSuccess
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestParse_IsNotCached(t *testing.T) {
	t.Setenv("CFG_TEST_NAME_PARSE", "first")

	var first testConfigParse
	require.NoError(t, config.Parse(&first))

	t.Setenv("CFG_TEST_NAME_PARSE", "second")

	var second testConfigParse
	require.NoError(t, config.Parse(&second))

	assert.Equal(t, "first", first.Name)
	assert.Equal(t, "second", second.Name)
}

func TestParseFromMap(t *testing.T) {
	t.Parallel()

	t.Run("reads only the given map", func(t *testing.T) {
		t.Parallel()

		var cfg testConfigParse
		require.NoError(t, config.ParseFromMap(&cfg, map[string]string{"CFG_TEST_NAME_PARSE": "from_map"}))
		assert.Equal(t, "from_map", cfg.Name)
	})

	t.Run("applies defaults for missing keys", func(t *testing.T) {
		t.Parallel()

		var cfg testConfigParse
		require.NoError(t, config.ParseFromMap(&cfg, map[string]string{}))
		assert.Equal(t, "default_value", cfg.Name)
	})

	t.Run("reports missing required values", func(t *testing.T) {
		t.Parallel()

		var cfg testConfigRequired
		err := config.ParseFromMap(&cfg, nil)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("CFG_TEST_FROM_FILE")
	t.Cleanup(func() { os.Unsetenv("CFG_TEST_FROM_FILE") })

	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("CFG_TEST_FROM_FILE=file_value\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))
	config.ResetCache()

	var cfg testConfigEnvFile
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "file_value", cfg.FromFile)

	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
