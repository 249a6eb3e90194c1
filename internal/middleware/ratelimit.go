package middleware

import (
    "bytes"
    "context"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "fmt"
    "io"
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/hotel-booking/internal/config"
)

// maxCredentialPeek bounds how much of a request body the throttle reads to
// find the account email.
const maxCredentialPeek = 64 << 10

// refillScript keeps a token bucket in a Redis hash {tokens, stamp}.  It
// returns {allowed, tokens left, ms until the next token}.
var refillScript = redis.NewScript(`
local capacity = tonumber(ARGV[2])
local step = tonumber(ARGV[3])
local every = tonumber(ARGV[4])
local now = tonumber(ARGV[1])

local cur = redis.call('HMGET', KEYS[1], 'tokens', 'stamp')
local tokens = tonumber(cur[1]) or capacity
local stamp = tonumber(cur[2]) or now

local ticks = math.floor(math.max(0, now - stamp) / every)
if ticks > 0 then
    tokens = math.min(capacity, tokens + ticks * step)
    stamp = stamp + ticks * every
end

local ok = 0
local wait = 0
if tokens >= 1 then
    ok = 1
    tokens = tokens - 1
else
    wait = math.max(0, every - (now - stamp))
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'stamp', stamp)
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return {ok, tokens, wait}
`)

type attempt struct {
    allowed   bool
    remaining int64
    retry     time.Duration
}

// bucketStore spends one token from the bucket at key.
type bucketStore interface {
    take(ctx context.Context, key string, now time.Time) (attempt, error)
}

type redisBuckets struct {
    rdb *redis.Client
    cfg config.RateLimitConfig
}

func (b redisBuckets) take(ctx context.Context, key string, now time.Time) (attempt, error) {
    vals, err := refillScript.Run(ctx, b.rdb, []string{key},
        now.UnixMilli(), b.cfg.Capacity, b.cfg.RefillTokens,
        b.cfg.RefillInterval.Milliseconds(), b.cfg.TTL.Milliseconds()).Int64Slice()
    if err != nil {
        return attempt{}, err
    }
    if len(vals) != 3 {
        return attempt{}, fmt.Errorf("throttle script returned %d values", len(vals))
    }
    return attempt{allowed: vals[0] == 1, remaining: vals[1], retry: time.Duration(vals[2]) * time.Millisecond}, nil
}

// NewLoginThrottle limits credential attempts on the auth routes.  Every
// client address gets its own bucket per route and account email, so
// password guessing against one account is slowed without locking the
// account for other clients.  Without Redis it is a pass-through; Redis
// errors let the request through.
func NewLoginThrottle(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return loginThrottle(cfg, redisBuckets{rdb: rdb, cfg: cfg})
}

func loginThrottle(cfg config.RateLimitConfig, store bucketStore) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := throttleKey(cfg.Prefix, c)
            res, err := store.take(c.Request().Context(), key, time.Now())
            if err != nil {
                c.Logger().Warnf("login throttle unavailable for %s: %v", c.Path(), err)
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(res.remaining, 0), 10))
            if res.allowed {
                return next(c)
            }

            secs := int(math.Ceil(res.retry.Seconds()))
            if secs < 1 {
                secs = 1
            }
            h.Set("Retry-After", strconv.Itoa(secs))
            c.Logger().Infof("login throttle: %s blocked for %ds", c.RealIP(), secs)
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "message":     "Too many requests, please try again later",
                "retry_after": secs,
            })
        }
    }
}

// throttleKey is <prefix>:<route>:<client ip>:<email digest>.  The email is
// read from the JSON body, which stays readable for the handler; "-" stands
// in when there is none.
func throttleKey(prefix string, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    return strings.Join([]string{prefix, c.Path(), ip, accountDigest(c.Request())}, ":")
}

func accountDigest(r *http.Request) string {
    if r.Body == nil || r.Body == http.NoBody {
        return "-"
    }
    head, err := io.ReadAll(io.LimitReader(r.Body, maxCredentialPeek))
    r.Body = struct {
        io.Reader
        io.Closer
    }{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
    if err != nil {
        return "-"
    }

    var creds struct {
        Email string `json:"email"`
    }
    if json.Unmarshal(head, &creds) != nil {
        return "-"
    }
    email := strings.ToLower(strings.TrimSpace(creds.Email))
    if email == "" {
        return "-"
    }
    sum := sha256.Sum256([]byte(email))
    return hex.EncodeToString(sum[:8])
}
