package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
	apperrors "github.com/getSono/OpenPOS-sub000/internal/errors"
)

const (
	sessionName      = "openpos_session"
	sessionKeyUserID = "user_id"
)

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			return apperrors.UnauthorizedError("not signed in")
		}

		raw, ok := session.Values[sessionKeyUserID].(string)
		if !ok {
			return apperrors.UnauthorizedError("not signed in")
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.UnauthorizedError("not signed in")
		}

		c.Set("userID", userID)
		return next(c)
	}
}

type badgeLoginRequest struct {
	BadgeCode string `json:"badgeCode"`
}

func (s *Server) handleBadgeLogin(c echo.Context) error {
	var req badgeLoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, err := s.app.LoginByBadge(c.Request().Context(), req.BadgeCode)
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperrors.UnauthorizedError("unknown badge")
	}
	if err != nil {
		return err
	}

	session, _ := s.sessionStore.Get(c.Request(), sessionName)
	session.Values[sessionKeyUserID] = user.ID.String()
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save session", err)
	}

	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleLogout(c echo.Context) error {
	session, _ := s.sessionStore.Get(c.Request(), sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to clear session", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleCurrentUser(c echo.Context) error {
	userID := c.Get("userID").(uuid.UUID)

	user, err := s.app.GetUserByID(c.Request().Context(), userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperrors.UnauthorizedError("not signed in")
	}
	if err != nil {
		return apperrors.InternalError("failed to load user", err)
	}
	return c.JSON(http.StatusOK, user)
}
