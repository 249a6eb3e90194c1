package middleware

import (
    "bytes"
    "context"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/hotel-booking/internal/config"
)

// Route patterns served from the catalog cache.
const (
    routeAllHotels = "/api/hotel/getAllHotels"
    routeHotelByID = "/api/hotel/hotelById/:id"
)

// catalogStore holds rendered catalog bodies.  get reports a miss with
// found=false and a nil error.
type catalogStore interface {
    get(ctx context.Context, key string) (body []byte, found bool, err error)
    set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

type redisCatalog struct{ rdb *redis.Client }

func (r redisCatalog) get(ctx context.Context, key string) ([]byte, bool, error) {
    b, err := r.rdb.Get(ctx, key).Bytes()
    if errors.Is(err, redis.Nil) {
        return nil, false, nil
    }
    if err != nil {
        return nil, false, err
    }
    return b, true, nil
}

func (r redisCatalog) set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
    return r.rdb.Set(ctx, key, body, ttl).Err()
}

// NewCatalogCache serves GET getAllHotels and GET hotelById/:id from Redis.
// Only 200 JSON bodies up to cfg.MaxBodyBytes are stored; hits are answered
// with the stored body and X-Cache: HIT.  Other routes and Redis failures
// fall through to the handler.
func NewCatalogCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return catalogCache(cfg, redisCatalog{rdb: rdb})
}

func catalogCache(cfg config.CacheConfig, store catalogStore) echo.MiddlewareFunc {
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = time.Minute
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key, ok := catalogKey(cfg.Prefix, c)
            if !ok {
                return next(c)
            }
            ctx := c.Request().Context()

            body, found, err := store.get(ctx, key)
            if err != nil {
                c.Logger().Warnf("catalog cache read %s: %v", key, err)
            }
            if found {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.JSONBlob(http.StatusOK, body)
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            if rec.status != http.StatusOK || rec.overflow || rec.buf.Len() == 0 {
                return nil
            }
            if err := store.set(context.WithoutCancel(ctx), key, rec.buf.Bytes(), ttl); err != nil {
                c.Logger().Warnf("catalog cache write %s: %v", key, err)
            }
            return nil
        }
    }
}

// catalogKey maps a cacheable request to <prefix>:hotels:all or
// <prefix>:hotels:<id>.
func catalogKey(prefix string, c echo.Context) (string, bool) {
    if c.Request().Method != http.MethodGet {
        return "", false
    }
    switch c.Path() {
    case routeAllHotels:
        return prefix + ":hotels:all", true
    case routeHotelByID:
        id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
        if err != nil || id == 0 {
            return "", false
        }
        return prefix + ":hotels:" + strconv.FormatUint(id, 10), true
    }
    return "", false
}

// bodyRecorder forwards the response and keeps a copy of the body until it
// grows past limit.
type bodyRecorder struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    limit    int
    overflow bool
}

func (r *bodyRecorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
    if !r.overflow {
        if r.limit > 0 && r.buf.Len()+len(b) > r.limit {
            r.overflow = true
            r.buf.Reset()
        } else {
            r.buf.Write(b)
        }
    }
    return r.ResponseWriter.Write(b)
}
