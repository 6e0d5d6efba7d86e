package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

func validRequestID(id string) bool {
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

func bodyDigest(b []byte) string {
	s := sha256.Sum256(b)
	return hex.EncodeToString(s[:])
}

func storeKey(method, path, caller, requestID string) string {
	return "idemp:" + strings.ToLower(method) + ":" + path + ":" + caller + ":" + requestID
}

// parseRequestAt accepts epoch seconds, epoch milliseconds, or
// RFC3339/RFC3339Nano with an explicit timezone. Naive local timestamps are
// rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + headerRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 { // ms
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New(headerRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
}

func acquire(ctx context.Context, rdb *redis.Client, key string, sr storedResponse) (bool, error) {
	payload, _ := json.Marshal(sr)
	return rdb.SetNX(ctx, key, payload, inFlightTTL).Result()
}

func load(ctx context.Context, rdb *redis.Client, key string) (storedResponse, error) {
	var sr storedResponse
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return sr, err
	}
	if err := json.Unmarshal(v, &sr); err != nil {
		return sr, err
	}
	return sr, nil
}

func store(ctx context.Context, rdb *redis.Client, key string, sr storedResponse, ttl time.Duration) error {
	payload, _ := json.Marshal(sr)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
