package middleware

import "github.com/labstack/echo/v4"

// UserID returns the authenticated user id, or false when the request did
// not pass through JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ContextUserID).(uint64)
    return id, ok && id != 0
}
