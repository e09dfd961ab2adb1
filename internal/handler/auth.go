package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"wastewise-pickup-demo/internal/dto"
	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/service"
)

type AuthHandler struct {
	authService         service.AuthService
	contributionService service.ContributionService
}

func NewAuthHandler(authService service.AuthService, contributionService service.ContributionService) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		contributionService: contributionService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.authService.Register(ctx, req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token, _ := strings.CutPrefix(auth, "Bearer ")

	h.authService.Logout(c.Request().Context(), token)

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := c.Get("user").(*model.User)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	contribution, err := h.contributionService.Last(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": dto.UserInfo{
			ID:     user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Points: user.Points,
		},
		"lastContribution": contribution,
	})
}
