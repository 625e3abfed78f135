package http

import (
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-api/internal/application/dto"
	"github.com/jhoicas/resto-api/internal/domain"
)

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrNotDeleted, fiber.StatusBadRequest, "NOT_DELETED"},
		{domain.ErrDuplicateDeleted, fiber.StatusConflict, "DUPLICATE_DELETED"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{errors.New("se cayó la base"), fiber.StatusInternalServerError, "INTERNAL"},
		// Los errores envueltos se resuelven con errors.Is.
		{fmt.Errorf("cargando producto: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			status, body := invokeRespondError(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRespondError_DependencyNamesBlockingClass(t *testing.T) {
	err := &domain.DependencyError{Entity: "rol", Dependency: "usuarios activos con el rol"}

	status, body := invokeRespondError(t, err)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DEPENDENCY", body.Code)
	assert.Contains(t, body.Message, "usuarios activos con el rol")
}

func invokeRespondError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	req := httptest.NewRequest(nethttp.MethodGet, "/err", nil)
	resp, testErr := app.Test(req)
	require.NoError(t, testErr)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}
