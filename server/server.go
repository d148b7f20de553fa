// Package server runs the forwarder behind a local HTTP listener, the way API
// Gateway fronts it once deployed.
package server

import (
	"net"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatrelay/forwarder"
)

// Server is a fiber app exposing the forwarder on /chat.
type Server struct {
	config Config
	logger *zap.Logger
	server *fiber.App
}

// New creates a new Server. handler is usually a *forwarder.Forwarder.
func New(config Config, handler http.Handler, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		logger: logger,
		server: app,
	}

	app.Get("/health", handleHealth)
	app.Options("/chat", handlePreflight)
	app.Post("/chat", adaptor.HTTPHandler(handler))

	return s
}

// Run starts the server on the configured listening address.
func (s *Server) Run() error {
	s.logger.Info("starting chatrelay server", zap.String("listen", s.config.ListenAddr))
	return s.server.Listen(s.config.ListenAddr)
}

// RunWithListener serves on an existing listener.
func (s *Server) RunWithListener(l net.Listener) error {
	s.logger.Info("starting chatrelay server", zap.String("listen", l.Addr().String()))
	return s.server.Listener(l)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	return s.server.Shutdown()
}

func handleHealth(c *fiber.Ctx) error {
	return c.JSON(map[string]string{"status": "ok"})
}

// handlePreflight answers browser CORS preflight requests. API Gateway does
// this itself in front of the deployed function.
func handlePreflight(c *fiber.Ctx) error {
	for k, v := range forwarder.CORSHeaders {
		c.Set(k, v)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
