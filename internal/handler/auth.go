package handler

import (
    "net/http" // HTTP status codes and primitives

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/hotel-booking/internal/middleware" // context keys set by JWTAuth
    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service" // credential service
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type verifyResp struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register: create user and sign them in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Auth.Register(ctx, service.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return respondError(c, err, "Server error during registration")
	}
	return c.JSON(http.StatusCreated, res)
}

// Login: verify credentials and return a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Auth.Login(ctx, service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return respondError(c, err, "Server error during login")
	}
	return c.JSON(http.StatusOK, res)
}

// Verify echoes the profile of the token holder.  JWTAuth has already
// resolved the user.
func (h *AuthHandler) Verify(c echo.Context) error {
	u, ok := c.Get(middleware.ContextUser).(model.User)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
	}
	return c.JSON(http.StatusOK, verifyResp{Name: u.Name, Email: u.Email})
}
