package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/services/fraud/internal/service"
)

type FraudHTTP struct {
	Svc *service.FraudService
}

type checkResponse struct {
	IsFraudster bool `json:"isFraudster"`
}

func (h *FraudHTTP) Check(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "fraud_check")

	userID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		l.Warn("check_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	fraudster, err := h.Svc.IsFraudulentUser(ctx, uint(userID))
	if err != nil {
		l.Error("check_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, checkResponse{IsFraudster: fraudster})
}

func Register(e *echo.Echo, h *FraudHTTP) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/api/v1/fraud-check/:userID", h.Check)
}
