package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"furk/config"
	"furk/shared/constant"
	"furk/transport/http/router"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

// HTTP owns the server lifecycle. Outside development, SIGTERM triggers a
// two-phase shutdown: a grace period for the load balancer to drain traffic,
// then a cleanup period for in-flight bookings and payments to finish.
type HTTP struct {
	Config *config.Config
	Router router.Router
	State  ServerState
	server *http.Server
}

func New(cfg *config.Config, r router.Router) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// Handler exposes the configured router, used by tests to run the server
// in-process.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.server.Handler
}

func (h *HTTP) setup() {
	mux := chi.NewRouter()
	h.Router.SetupRoutes(mux)

	h.server = &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", h.Config.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(sigCh)

	h.State = ServerStateReady
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		return
	}

	shutdown := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdown.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod
	time.Sleep(time.Duration(shutdown.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdown.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdown.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
