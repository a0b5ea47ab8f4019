package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/services/user/internal/service"
	"github.com/musicclouds/platform/services/user/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func userID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return uint(id), nil
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Svc.AllUsers(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("user_list_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	views := make([]transport.UserView, 0, len(users))
	for i := range users {
		views = append(views, transport.ViewOf(&users[i]))
	}
	return c.JSON(http.StatusOK, views)
}

func (h *UserHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		logging.FromContext(ctx).Error("user_get_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, transport.ViewOf(user))
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_update")

	id, err := userID(c)
	if err != nil {
		return err
	}

	var req transport.UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateUser(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidRequest):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateIdentity):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			l.Error("update_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	return c.JSON(http.StatusOK, transport.ViewOf(user))
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		logging.FromContext(ctx).Error("user_delete_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.NoContent(http.StatusNoContent)
}
