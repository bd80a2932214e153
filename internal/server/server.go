package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nguyentantai21042004/notime/internal/dispatcher"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/relay"
)

// maxWebhookBytes caps the webhook body read for signature verification.
const maxWebhookBytes = 1 << 20

type Handler struct {
	Dispatcher dispatcher.Dispatcher
	// Relay is optional; without it POST /callback is not routed.
	Relay    relay.Relay
	Gatherer prometheus.Gatherer
	Logger   logger.Logger
}

// New builds the echo instance serving the summarizer API, the webhook relay and ops endpoints.
// Either Dispatcher or Relay may be nil to serve only the other.
func New(h Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(requestID(h.Logger))
	e.Use(middleware.Recover())

	if h.Dispatcher != nil {
		e.GET("/", h.summarize)
	}
	if h.Relay != nil {
		e.Any("/callback", h.callback)
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if h.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})))
	}
	return e
}

// summarize answers GET /?url=<url> with the Result JSON. A missing url is treated as "/".
func (h Handler) summarize(c echo.Context) error {
	rawURL := c.QueryParam("url")
	if rawURL == "" {
		rawURL = "/"
	}
	return c.JSON(http.StatusOK, h.Dispatcher.Handle(c.Request().Context(), rawURL))
}

type ack struct {
	OK bool `json:"ok"`
}

// callback acknowledges a chat webhook; events are answered asynchronously.
func (h Handler) callback(c echo.Context) error {
	req := c.Request()
	if req.Method != http.MethodPost {
		return c.JSON(http.StatusOK, ack{OK: false})
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxWebhookBytes))
	if err != nil {
		h.Logger.Warn(req.Context(), "Read webhook body: %v", err)
		return c.JSON(http.StatusOK, ack{OK: false})
	}

	ok := h.Relay.Accept(req.Context(), body, req.Header.Get("X-Line-Signature"))
	return c.JSON(http.StatusOK, ack{OK: ok})
}

// requestID tags each request with an id, carried in the logger context and the
// X-Request-Id response header, and logs one access line per request.
func requestID(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			ctx := logger.WithRequestID(req.Context(), id)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.Info(ctx, "%s %s %d %s", req.Method, req.URL.Path, c.Response().Status, time.Since(start))
			return nil
		}
	}
}

// Run serves e on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "Listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info(ctx, "Shutting down server")
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
