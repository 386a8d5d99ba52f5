package server

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pourhouse/pourhouse/internal/observability/logger"
	obsmetrics "github.com/pourhouse/pourhouse/internal/observability/metrics"
)

type dispenserRateLimitKey struct {
	Machine string `json:"machine"`
}

// DispenserRateLimit throttles machine-facing ingest endpoints. Requests
// are bucketed per machine identifier, falling back to the client address
// when the body carries none.
func (s *Server) DispenserRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.dispenserLimiter == nil || !s.dispenserLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key, err := readDispenserKey(c)
		if err != nil {
			logger.FromContext(ctx).Warn("dispenser rate limit read body failed", zap.Error(err))
			AbortWithError(c, invalidRequestError())
			return
		}

		res, err := s.dispenserLimiter.Allow(ctx, key)
		if err != nil {
			logger.FromContext(ctx).Warn("dispenser rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !res.Allowed {
			denyDispenserRateLimit(c, key, res.RetryAfter.Seconds(), s.obsMetrics)
			return
		}

		c.Next()
	}
}

func denyDispenserRateLimit(c *gin.Context, key string, retryAfter float64, metrics *obsmetrics.Metrics) {
	ctx := c.Request.Context()
	endpoint := normalizeRateLimitEndpoint(c)
	logger.FromContext(ctx).Warn("dispenser rate limit exceeded",
		zap.String("machine", key),
		zap.String("endpoint", endpoint),
	)
	if metrics != nil {
		metrics.RecordRateLimitDenied(ctx, endpoint)
	}

	seconds := int(retryAfter)
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	AbortWithError(c, ErrRateLimited)
}

func readDispenserKey(c *gin.Context) (string, error) {
	if machine := strings.TrimSpace(c.Query("machine")); machine != "" {
		return machine, nil
	}
	if c.Request.Body == nil {
		return c.ClientIP(), nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return c.ClientIP(), nil
	}

	var payload dispenserRateLimitKey
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.ClientIP(), nil
	}
	if machine := strings.TrimSpace(payload.Machine); machine != "" {
		return machine, nil
	}
	return c.ClientIP(), nil
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}
