package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves GET /health. The database check is load-bearing; the
// redis check is informational only, since the service degrades to in-memory
// caching and lazy metadata fetches without it.
type HealthHandler struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{pool: pool, redis: redisClient}
}

type healthCheck struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Detail    string `json:"detail,omitempty"`
}

type healthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]healthCheck `json:"checks"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	res := healthResponse{Status: "ok", Checks: map[string]healthCheck{}}

	res.Checks["database"] = runCheck(ctx, func(ctx context.Context) error {
		return h.pool.Ping(ctx)
	})
	if res.Checks["database"].Status != "ok" {
		res.Status = "unhealthy"
	}

	if h.redis != nil {
		res.Checks["redis"] = runCheck(ctx, func(ctx context.Context) error {
			return h.redis.Ping(ctx).Err()
		})
		if res.Checks["redis"].Status != "ok" && res.Status == "ok" {
			res.Status = "degraded"
		}
	}

	code := http.StatusOK
	if res.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, res)
}

func runCheck(ctx context.Context, ping func(context.Context) error) healthCheck {
	start := time.Now()
	err := ping(ctx)
	c := healthCheck{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		c.Status = "down"
		c.Detail = err.Error()
	}
	return c
}
