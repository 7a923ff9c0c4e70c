// Package gateway exposes the function registry over HTTP, serverless
// style: POST /functions/:name with {"args": "..."}.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/NivBraz/funcbox/internal/config"
	"github.com/NivBraz/funcbox/internal/functions"
	"github.com/NivBraz/funcbox/internal/httpserver"
	"github.com/NivBraz/funcbox/internal/models"
	"github.com/NivBraz/funcbox/pkg/transform"
)

type InvokeRequest struct {
	Args string `json:"args"`
}

type Gateway struct {
	cfg      config.Gateway
	registry *functions.Registry
	limiter  *rate.Limiter
	logger   *zap.Logger
}

func New(cfg config.Gateway, registry *functions.Registry, logger *zap.Logger) *Gateway {
	return &Gateway{
		cfg:      cfg,
		registry: registry,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:   logger,
	}
}

// StatusClientClosedRequest is reported when the caller goes away mid-call.
const StatusClientClosedRequest = 499

// GinMode picks gin's mode: debug output only alongside development logging.
func GinMode(development bool) string {
	if development {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// Router builds the gin engine.
func (g *Gateway) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/functions", g.ListFunctions)
	r.POST("/functions/:name", g.rateLimit(), g.InvokeFunction)
	return r
}

func (g *Gateway) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (g *Gateway) ListFunctions(c *gin.Context) {
	fns := g.registry.List()
	out := make([]models.FunctionInfo, 0, len(fns))
	for _, f := range fns {
		out = append(out, f.Info())
	}
	c.JSON(http.StatusOK, out)
}

func (g *Gateway) InvokeFunction(c *gin.Context) {
	name := c.Param("name")

	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), g.cfg.FunctionTimeoutDuration())
	defer cancel()

	id := uuid.NewString()
	start := time.Now()
	result, err := g.registry.Invoke(ctx, name, req.Args)
	elapsed := time.Since(start)

	if err != nil {
		status := statusFor(err)
		if status == StatusClientClosedRequest {
			g.logger.Debug("client went away",
				zap.String("id", id),
				zap.String("function", name))
			c.AbortWithStatus(status)
			return
		}
		g.logger.Info("invocation failed",
			zap.String("id", id),
			zap.String("function", name),
			zap.Int("status", status),
			zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error(), "id": id})
		return
	}

	g.logger.Debug("invocation succeeded",
		zap.String("id", id),
		zap.String("function", name),
		zap.Duration("elapsed", elapsed))
	c.JSON(http.StatusOK, models.Invocation{
		ID:       id,
		Name:     name,
		Result:   result,
		Duration: elapsed.Milliseconds(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, functions.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, transform.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// ListenAndServe serves the gateway until ctx is cancelled.
func (g *Gateway) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              g.cfg.Addr,
		Handler:           g.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return httpserver.Serve(ctx, srv, g.logger)
}
