package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/hotel-booking/internal/model"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// Context keys set by JWTAuth.
const (
    ContextUserID = "user_id" // uint64
    ContextUser   = "user"    // model.User
)

// TokenVerifier resolves a bearer token to the user it was issued for.
// service.AuthService satisfies it.
type TokenVerifier interface {
    Verify(ctx context.Context, token string) (model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the authenticated user into the request context.  Handlers
// access it via `c.Get("user_id")` (uint64) and `c.Get("user")`
// (model.User).  Any failure is answered with 401 and the chain stops.
func JWTAuth(verifier TokenVerifier) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
            }
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

            user, err := verifier.Verify(c.Request().Context(), raw)
            if err != nil {
                msg := service.Message(err)
                if msg == "" {
                    // Store failures are not the caller's fault, but we still
                    // cannot authenticate them.
                    c.Logger().Errorf("verify token: %v", err)
                    msg = "Not authorized"
                }
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": msg})
            }

            c.Set(ContextUserID, user.ID)
            c.Set(ContextUser, user)
            return next(c)
        }
    }
}
