package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCheck struct {
	err error
}

func (c staticCheck) HealthCheck(context.Context) error { return c.err }

func TestChecker_AllHealthy(t *testing.T) {
	c := NewChecker(nil)
	c.AddCheck("redis", staticCheck{})
	c.AddCheck("cache", staticCheck{})

	results, healthy := c.Check(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, map[string]string{"redis": "ok", "cache": "ok"}, results)
}

func TestChecker_OneFailing(t *testing.T) {
	c := NewChecker(nil)
	c.AddCheck("redis", staticCheck{})
	c.AddCheck("cache", staticCheck{err: errors.New("disk full")})

	results, healthy := c.Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "ok", results["redis"])
	assert.Equal(t, "disk full", results["cache"])
}

func TestChecker_IgnoresInvalidRegistrations(t *testing.T) {
	c := NewChecker(nil)
	c.AddCheck("", staticCheck{})
	c.AddCheck("nil", nil)

	results, healthy := c.Check(context.Background())
	assert.True(t, healthy)
	assert.Empty(t, results)
}

func TestChecker_Handler(t *testing.T) {
	c := NewChecker(nil)
	c.AddCheck("redis", staticCheck{})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	c.AddCheck("cache", staticCheck{err: errors.New("down")})

	rec = httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
