package handler

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-booking/internal/middleware"
    "github.com/iliyamo/hotel-booking/internal/service"
)

// requestTimeout bounds the store work of one request.
const requestTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// respondError writes {"message": ...} with the status matching the error
// kind.  Unclassified errors are logged and answered with the fixed
// fallback message so driver errors never reach the client.
func respondError(c echo.Context, err error, fallback string) error {
    status := http.StatusInternalServerError
    switch {
    case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
        status = http.StatusBadRequest
    case errors.Is(err, service.ErrAuthentication):
        status = http.StatusUnauthorized
    case errors.Is(err, service.ErrAuthorization):
        status = http.StatusForbidden
    case errors.Is(err, service.ErrNotFound):
        status = http.StatusNotFound
    }
    msg := service.Message(err)
    if status == http.StatusInternalServerError || msg == "" {
        c.Logger().Errorf("%s: %v", fallback, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": fallback})
    }
    c.Logger().Debugf("%s %s rejected (%s): %s", c.Request().Method, c.Path(), service.ErrorKind(err), msg)
    return c.JSON(status, echo.Map{"message": msg})
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
}

// currentUser returns the id stored by middleware.JWTAuth.
func currentUser(c echo.Context) (uint64, bool) {
    return middleware.UserID(c)
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// number accepts a JSON number or a numeric string, since form-driven
// clients send ids and counts as strings.  null and "" decode to zero;
// Inf and NaN spellings are rejected.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if bytes.Equal(b, []byte("null")) {
        *n = 0
        return nil
    }
    if len(b) > 0 && b[0] == '"' {
        var s string
        if err := json.Unmarshal(b, &s); err != nil {
            return err
        }
        s = strings.TrimSpace(s)
        if s == "" {
            *n = 0
            return nil
        }
        f, err := strconv.ParseFloat(s, 64)
        if err != nil {
            return err
        }
        if math.IsInf(f, 0) || math.IsNaN(f) {
            return fmt.Errorf("number %q is not finite", s)
        }
        *n = number(f)
        return nil
    }
    var f float64
    if err := json.Unmarshal(b, &f); err != nil {
        return err
    }
    *n = number(f)
    return nil
}

// wholeNumber reports whether n is an integer and returns it.
func (n number) wholeNumber() (int64, bool) {
    f := float64(n)
    i := int64(f)
    return i, float64(i) == f
}

// digits accepts a JSON string or a bare JSON number and keeps its text, so
// an identity number typed into a numeric field reaches validation intact.
// null decodes to "".
type digits string

func (d *digits) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if bytes.Equal(b, []byte("null")) {
        *d = ""
        return nil
    }
    if len(b) > 0 && b[0] == '"' {
        var s string
        if err := json.Unmarshal(b, &s); err != nil {
            return err
        }
        *d = digits(s)
        return nil
    }
    var num json.Number
    if err := json.Unmarshal(b, &num); err != nil {
        return err
    }
    *d = digits(num.String())
    return nil
}
