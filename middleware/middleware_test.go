package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizet96/citas-backend/models"
)

func TestFilterSensitiveData(t *testing.T) {
	body := `{"paciente_nombre":"Ana","telefono":"5551234","email":"ana@example.com"}`

	filtered := filterSensitiveData(body)

	assert.Contains(t, filtered, `"paciente_nombre":"Ana"`)
	assert.Contains(t, filtered, `"telefono":"[FILTERED]"`)
	assert.Contains(t, filtered, `"email":"[FILTERED]"`)
	assert.NotContains(t, filtered, "ana@example.com")
}

func TestFilterSensitiveDataNotJSON(t *testing.T) {
	assert.Equal(t, "", filterSensitiveData(""))
	assert.Equal(t, "status=cancelada", filterSensitiveData("status=cancelada"))

	long := strings.Repeat("x", maxBodyLog+10)
	assert.True(t, strings.HasSuffix(filterSensitiveData(long), "...[truncated]"))
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, models.LogLevelSuccess},
		{201, models.LogLevelSuccess},
		{304, models.LogLevelInfo},
		{400, models.LogLevelWarning},
		{404, models.LogLevelWarning},
		{500, models.LogLevelError},
		{0, models.LogLevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, determineLogLevel(tt.code), "status %d", tt.code)
	}
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Use(CreateRateLimiter(RateLimitConfig{Max: 2, Expiration: time.Minute}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestBodySizeLimit(t *testing.T) {
	app := fiber.New()
	app.Use(BodySizeLimit(8))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })

	resp, err := app.Test(httptest.NewRequest("POST", "/", strings.NewReader("corto")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/", strings.NewReader("demasiado largo")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestSecurityHeadersAndLogging(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders(), LoggingMiddleware(), Metrics())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
