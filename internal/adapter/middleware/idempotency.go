package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	headerRequestID = "X-Request-Id"
	headerRequestAt = "X-Request-At"

	// Provisional lock held while a first attempt is still running.
	inFlightTTL = 60 * time.Second
	// Allowed client/server clock skew for X-Request-At (UTC).
	maxClockSkew = 10 * time.Minute
)

type storedResponse struct {
	InFlight   bool      `json:"in_flight"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	RequestID  string    `json:"request_id"`
	StoredAt   time.Time `json:"stored_at"`
}

type captureWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Idempotency guards mutating routes: the first request under a
// (route, caller, request-id) key runs; concurrent repeats get 409;
// later repeats with the same body replay the stored response until the TTL
// expires. identityHeader names the 32-hex caller header for the route
// group (doctor- or hospital-facing).
func Idempotency(rdb *redis.Client, identityHeader string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.ToLower(strings.TrimSpace(req.Header.Get(headerRequestID)))
			if !validRequestID(reqID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing or invalid " + headerRequestID})
			}
			reqAt, err := parseRequestAt(req.Header.Get(headerRequestAt))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			now := time.Now().UTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": headerRequestAt + " too skewed"})
			}
			caller := strings.TrimSpace(req.Header.Get(identityHeader))
			if !reHex32.MatchString(caller) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing or invalid " + identityHeader})
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			digest := bodyDigest(body)

			key := storeKey(req.Method, c.Path(), caller, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			acquired, err := acquire(ctx, rdb, key, storedResponse{
				InFlight:   true,
				BodySHA256: digest,
				RequestID:  reqID,
				StoredAt:   now,
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !acquired {
				prev, err := load(ctx, rdb, key)
				if err != nil {
					log.Printf("idempotency: load %s: %v", key, err)
					return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
				}
				if prev.BodySHA256 != digest {
					return c.JSON(http.StatusConflict, map[string]string{"error": headerRequestID + " reused with different body"})
				}
				if !prev.InFlight && prev.Code != 0 {
					return c.Blob(prev.Code, echo.MIMEApplicationJSON, prev.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				c.Error(err)
			}

			// Store outside the request context: the caller may already be
			// gone, the recorded outcome must survive anyway.
			if err := store(context.Background(), rdb, key, storedResponse{
				Code:       cw.code,
				Body:       cw.buf.Bytes(),
				BodySHA256: digest,
				RequestID:  reqID,
				StoredAt:   time.Now().UTC(),
			}, ttl); err != nil {
				log.Printf("idempotency: store %s: %v", key, err)
			}
			return nil
		}
	}
}
