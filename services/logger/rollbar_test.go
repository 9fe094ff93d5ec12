package logsvc

import (
	"bytes"
	"errors"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/smartfill/core"
)

func newTestLogger(debug bool) (*RollbarLogger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	logger := NewRollbarLogger(log.New(buf, "", 0), &core.Config{Env: "TEST", Debug: debug})
	logger.Enable(false)
	return logger, buf
}

func TestRollbarLogger_levels(t *testing.T) {
	logger, buf := newTestLogger(false)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Info("started")
	logger.Warn("slow fill", map[string]interface{}{"count": 10})
	logger.Error("fill failed", errors.New("boom"))
	assert.Equal(t,
		"[INFO] started\n[WARN] slow fill\n  map[count:10]\n[ERROR] fill failed\n  boom\n",
		buf.String(),
	)
}

func TestRollbarLogger_debug(t *testing.T) {
	logger, buf := newTestLogger(true)

	req := httptest.NewRequest("POST", "/v1/fill/predict", nil)
	logger.Debug("request", req, 42)
	assert.Equal(t, "[DEBUG] request\n  POST /v1/fill/predict\n  42\n", buf.String())
}
