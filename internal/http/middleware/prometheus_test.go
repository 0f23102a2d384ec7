package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherCounter(t *testing.T, reg *prometheus.Registry, name string) []*dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()
		}
	}
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestPrometheusMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(pm.Handler())
	app.Get("/document/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("counts requests with the route pattern", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/document/1", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp, _ = app.Test(httptest.NewRequest("GET", "/document/2", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		metrics := gatherCounter(t, reg, "http_requests_total")
		require.Len(t, metrics, 1)
		assert.Equal(t, "/document/:id", labelValue(metrics[0], "path"))
		assert.Equal(t, "200", labelValue(metrics[0], "status"))
		assert.Equal(t, float64(2), metrics[0].GetCounter().GetValue())
	})

	t.Run("observes request duration", func(t *testing.T) {
		metrics := gatherCounter(t, reg, "http_request_duration_seconds")
		require.Len(t, metrics, 1)
		assert.Equal(t, uint64(2), metrics[0].GetHistogram().GetSampleCount())
	})

	t.Run("metrics endpoint is excluded", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		metrics := gatherCounter(t, reg, "http_requests_total")
		require.Len(t, metrics, 1)
		assert.Equal(t, float64(2), metrics[0].GetCounter().GetValue())
	})

	t.Run("counts 404 with the raw path fallback", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/missing", nil))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		metrics := gatherCounter(t, reg, "http_requests_total")
		found := false
		for _, m := range metrics {
			if labelValue(m, "status") == "404" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("double registration fails", func(t *testing.T) {
		_, err := NewPrometheusMiddleware(reg)
		assert.Error(t, err)
	})
}
