package core

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		old, had := os.LookupEnv(k)
		if err := os.Setenv(k, v); err != nil {
			t.Fatalf("os.Setenv(%s): %v", k, err)
		}
		k := k
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(k, old)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}
}

func TestNewConfig_defaults(t *testing.T) {
	setEnv(t, map[string]string{"ENV": "qa"})

	conf := NewConfig()
	assert.Equal(t, "QA", conf.Env)
	assert.Equal(t, "SmartFill", conf.AppName)
	assert.False(t, conf.TestMode)
	assert.Equal(t, ":8000", conf.Server.Host)
	assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, "localhost:5432", conf.Database.Address())
	assert.Equal(t, 5000, conf.Fill.MaxCount)
	assert.Equal(t, 1024, conf.Fill.CacheSize)
}

func TestNewConfig_env(t *testing.T) {
	setEnv(t, map[string]string{
		"ENV":                         "test",
		"TEST_DEBUG":                  "false",
		"TEST_SERVER_SHUTDOWNTIMEOUT": "10s",
		"TEST_DATABASE_ENGINE":        "memory",
		"TEST_FILL_MAXCOUNT":          "50",
		"QA_FILL_CACHESIZE":           "1", // other env, ignored
	})

	conf := NewConfig()
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.False(t, conf.Debug)
	assert.Equal(t, 10*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, "memory", conf.Database.Engine)
	assert.Equal(t, 50, conf.Fill.MaxCount)
	assert.Equal(t, 1024, conf.Fill.CacheSize)
}
