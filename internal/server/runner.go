// Package server runs the daemon's long-lived components: the HTTP
// server, the scheduled rescan, and the maintenance jobs that keep the
// session and event tables trimmed.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	apiv1 "github.com/vmunix/medley/internal/api/v1"
	"github.com/vmunix/medley/internal/events"
	"github.com/vmunix/medley/internal/imagecache"
	"github.com/vmunix/medley/internal/metrics"
	"github.com/vmunix/medley/internal/repo"
	"github.com/vmunix/medley/internal/userdata"
)

const (
	shutdownTimeout     = 30 * time.Second
	maintenanceInterval = time.Hour
)

// Config holds the runner's tunables.
type Config struct {
	Listen         string
	Version        string
	RescanInterval time.Duration // 0 disables scheduled rescans
	EventRetention time.Duration // 0 disables event pruning
}

// Deps are the shared components the runner serves and maintains. Repo is
// required; the rest degrade the matching API surface when nil.
type Deps struct {
	Repo     *repo.Repository
	Users    *userdata.Store
	Bus      *events.Bus
	EventLog *events.EventLog
	Images   *imagecache.Cache
}

// Runner wires the catalog repository into an HTTP server and drives the
// background jobs around it. Create with NewRunner, start with Run.
type Runner struct {
	deps   Deps
	config Config
	logger *slog.Logger

	mu   sync.Mutex
	addr string
}

// NewRunner creates a runner. A nil logger falls back to slog.Default().
func NewRunner(deps Deps, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		deps:   deps,
		config: cfg,
		logger: logger,
	}
}

// Addr returns the bound listen address once Run has started the server.
func (r *Runner) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addr
}

// Run starts the HTTP server, kicks off the initial scan, and blocks until
// ctx is cancelled or a component fails. All components share the group
// context, so one failure shuts the rest down.
func (r *Runner) Run(ctx context.Context) error {
	if r.deps.Repo == nil {
		return errors.New("server: catalog repository is required")
	}
	g, ctx := errgroup.WithContext(ctx)

	ln, err := net.Listen("tcp", r.config.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", r.config.Listen, err)
	}
	r.mu.Lock()
	r.addr = ln.Addr().String()
	r.mu.Unlock()

	srv := &http.Server{
		Handler:           r.buildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("http shutdown", "error", err)
		}
		return ctx.Err()
	})

	// The first scan runs in the background so the API is reachable
	// immediately; it serves empty collections until the scan publishes.
	g.Go(func() error {
		if _, err := r.deps.Repo.ScanAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("initial scan failed", "error", err)
		}
		return nil
	})

	if r.deps.Bus != nil {
		g.Go(func() error {
			r.eventSink(ctx)
			return nil
		})
	}

	if r.config.RescanInterval > 0 {
		if err := r.scheduleRescan(ctx, g); err != nil {
			return err
		}
	}

	g.Go(func() error {
		r.maintenanceLoop(ctx)
		return nil
	})

	return g.Wait()
}

func (r *Runner) scheduleRescan(ctx context.Context, g *errgroup.Group) error {
	c := cron.New()
	spec := fmt.Sprintf("@every %s", r.config.RescanInterval)
	_, err := c.AddFunc(spec, func() {
		if _, err := r.deps.Repo.ScanAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("scheduled rescan failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule rescan %q: %w", spec, err)
	}
	c.Start()
	r.logger.Info("rescan scheduled", "interval", r.config.RescanInterval.String())

	g.Go(func() error {
		<-ctx.Done()
		// Stop returns a context that completes when running jobs finish.
		<-c.Stop().Done()
		return nil
	})
	return nil
}

// eventSink logs every event published on the bus at debug level.
func (r *Runner) eventSink(ctx context.Context) {
	ch := r.deps.Bus.SubscribeAll(64)
	defer r.deps.Bus.Unsubscribe(ch)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			r.logger.Debug("event", "type", e.EventType(), "collection", e.Collection())
		}
	}
}

// maintenanceLoop prunes expired sessions and old events on a fixed period.
// Failures are logged and retried on the next tick.
func (r *Runner) maintenanceLoop(ctx context.Context) {
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runMaintenance()
		}
	}
}

func (r *Runner) runMaintenance() {
	if r.deps.Users != nil {
		if n, err := r.deps.Users.PruneSessions(); err != nil {
			r.logger.Warn("session prune failed", "error", err)
		} else if n > 0 {
			r.logger.Info("pruned expired sessions", "count", n)
		}
		if n, err := r.deps.Users.CountSessions(); err == nil {
			metrics.ActiveSessions.Set(float64(n))
		}
	}
	if r.deps.EventLog != nil && r.config.EventRetention > 0 {
		if n, err := r.deps.EventLog.Prune(r.config.EventRetention); err != nil {
			r.logger.Warn("event prune failed", "error", err)
		} else if n > 0 {
			r.logger.Info("pruned old events", "count", n)
		}
	}
}

// buildRouter assembles the full HTTP surface: the v1 API, the Prometheus
// scrape endpoint, and a liveness probe.
func (r *Runner) buildRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogging(r.logger), httpMetrics())

	api := apiv1.New(apiv1.ServerDeps{
		Catalog:  r.deps.Repo,
		Users:    r.deps.Users,
		Bus:      r.deps.Bus,
		EventLog: r.deps.EventLog,
		Images:   r.deps.Images,
	}, apiv1.Config{Version: r.config.Version})
	api.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)

	return router
}
