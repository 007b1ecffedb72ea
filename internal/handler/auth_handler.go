package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/expomeet/expomeet-server/internal/middleware"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	auth   service.AuthService
	access service.AccessService
}

func NewAuthHandler(auth service.AuthService, access service.AccessService) *AuthHandler {
	return &AuthHandler{auth: auth, access: access}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

type userResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}

	u, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}

	u, pair, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidToken {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "invalid credentials"))
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          toUserResponse(u),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	pair, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.auth.Me(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	authz := c.Request().Header.Get("Authorization")
	token := strings.TrimPrefix(authz, "Bearer ")
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) ValidateInvite(c echo.Context) error {
	inv, err := h.auth.ValidateInvite(c.Request().Context(), c.Param("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"email":      inv.Email,
		"name":       inv.Name,
		"expires_at": inv.ExpiresAt,
	})
}

type invitedRegistrationRequest struct {
	Token        string `json:"token" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required"`
	Organization string `json:"organization"`
	Designation  string `json:"designation"`
	Mobile       string `json:"mobile"`
	Country      string `json:"country"`
	State        string `json:"state"`
	City         string `json:"city"`
}

func (h *AuthHandler) RegisterInvited(c echo.Context) error {
	var req invitedRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}

	pending, err := h.auth.RegisterInvited(c.Request().Context(), req.Token, service.InvitedRegistration{
		Email:        req.Email,
		Name:         req.Name,
		Organization: req.Organization,
		Designation:  req.Designation,
		Mobile:       req.Mobile,
		Country:      req.Country,
		State:        req.State,
		City:         req.City,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "registration received",
		"pending_id": pending.ID,
	})
}

type walkInRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required"`
	Organization string `json:"organization"`
	Mobile       string `json:"mobile"`
}

func (h *AuthHandler) RegisterWalkIn(c echo.Context) error {
	var req walkInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}

	u, p, err := h.auth.RegisterWalkIn(c.Request().Context(), req.Email, req.Name, req.Organization, req.Mobile)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user":    toUserResponse(u),
		"profile": p,
	})
}

func (h *AuthHandler) CheckUserAccess(c echo.Context) error {
	info, err := h.access.CheckAccess(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

func (h *AuthHandler) ListAccessLogs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	logs, total, err := h.access.ListLogs(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
	})
}
