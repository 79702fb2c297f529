// Package api serves solar angles, solar events, and device controls
// over HTTP.
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/subtlepseudonym/heliocore"
	"github.com/subtlepseudonym/heliocore/device"
	"github.com/subtlepseudonym/heliocore/metrics"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	httpServer *http.Server

	calc     *heliocore.Calculator
	location heliocore.Location
	devices  map[string]device.Device
	limiter  *rate.Limiter
	now      func() time.Time
}

// NewServer creates a configured HTTP server. Requests that omit a
// location use the given default.
func NewServer(addr string, calc *heliocore.Calculator, location heliocore.Location, devices map[string]device.Device) *Server {
	if calc == nil {
		calc = heliocore.Default
	}
	if devices == nil {
		devices = make(map[string]device.Device)
	}

	s := &Server{
		calc:     calc,
		location: location,
		devices:  devices,
		now:      time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthz)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /api/v1/orbital-degree", s.orbitalDegree)
	mux.HandleFunc("GET /api/v1/zenith-angle", s.zenithAngle)
	mux.HandleFunc("GET /api/v1/events", s.events)
	mux.HandleFunc("GET /devices/{label}/status", s.deviceStatus)
	mux.HandleFunc("POST /devices/{label}", s.devicePower)

	// metrics -> request id -> logging -> rate limit -> mux
	var handler http.Handler = mux
	handler = s.rateLimitMiddleware(handler)
	handler = loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)
	handler = metrics.Middleware(handler)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// SetRateLimit limits API requests to rps per second across all clients.
// A limit of zero or less removes the limit. It must be called before
// the server starts handling requests.
func (s *Server) SetRateLimit(rps float64) {
	if rps <= 0 {
		s.limiter = nil
		return
	}

	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// HTTPServer returns the underlying *http.Server
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

func (s *Server) ListenAndServe() error {
	log.Printf("listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
