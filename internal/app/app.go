package app

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/renzojacob/IntelliHRTrack/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires dependencies and routes, then fires the mount-time
// reconciliation. The returned shutdown func cancels any reconcile still in
// flight so a late result is never applied after teardown.
func BuildApp(router *gin.Engine) (func(), error) {
	baseURL := os.Getenv("UPSTREAM_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	timeout := 10 * time.Second
	if v := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	client := upstream.NewClient(baseURL, timeout)
	svc := registerModules(router, client)

	zap.L().Info("upstream configured",
		zap.String("base_url", baseURL),
		zap.Duration("timeout", timeout),
	)

	// Mount-time reconciliation: fire-and-forget, server stays authoritative
	// whenever reachable, local seed data survives when it is not.
	ctx, cancel := context.WithCancel(context.Background())
	go svc.Reconcile(ctx)

	return cancel, nil
}
