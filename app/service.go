package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fieldops/planboard/api/planning"
	"github.com/fieldops/planboard/config"
	"github.com/fieldops/planboard/core/backlog"
	"github.com/fieldops/planboard/core/board"
	"github.com/fieldops/planboard/core/store"
	"github.com/fieldops/planboard/infra/logger"
	"github.com/fieldops/planboard/infra/metrics"
	"github.com/fieldops/planboard/infra/mqtt"
	sqlitestore "github.com/fieldops/planboard/infra/store/sqlite"
	"github.com/fieldops/planboard/internal/eventbus"
)

// Service wires the stores, the board engine and the HTTP API together
// and fans board events out to metrics and MQTT.
type Service struct {
	State store.State
	Board *board.Engine

	cfg      *config.Config
	bus      *eventbus.TypedBus[board.Event]
	db       *sqlitestore.DB
	mqttPub  mqtt.Publisher
	notifier *mqtt.Notifier
	handler  http.Handler
	log      logger.Logger
}

// New builds a Service from the configuration. cfg must have its
// defaults applied.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var state store.State
	var db *sqlitestore.DB
	switch cfg.Store.Backend {
	case "sqlite":
		var err error
		db, err = sqlitestore.Open(cfg.Store.Path, logger.New("sqlite"))
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		state = db.State()
	default:
		state = store.NewMemoryState()
	}

	bus := eventbus.NewTyped[board.Event]()
	engine := board.New(cfg.Board, cfg.Service, state, logger.New("board"), bus)

	svc := &Service{
		State:   state,
		Board:   engine,
		cfg:     cfg,
		bus:     bus,
		db:      db,
		handler: planning.New(state, engine, cfg.Backlog.OverdueDays, cfg.Backlog.HorizonDays),
		log:     logg,
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			_ = svc.closeStore()
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.mqttPub = client
		svc.notifier = mqtt.NewNotifier(client, cfg.MQTT.TopicPrefix)
	}
	return svc, nil
}

// Handler exposes the planning API for embedding in another server.
func (s *Service) Handler() http.Handler { return s.handler }

// Run starts the API server and the board event consumers and blocks
// until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	sink, err := metrics.NewSink(s.cfg.Metrics)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	go metrics.RunRecorder(ctx, s.bus, sink, logger.New("metrics"))
	go metrics.RunBacklogGauge(ctx, time.Minute, s.backlogSize, sink, logger.New("metrics"))
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort, logger.New("prom_server")); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.notifier != nil {
		go s.notifier.Run(ctx, s.bus)
	}

	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: s.handler}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("planning API listening on %s", s.cfg.API.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases the event bus, the MQTT connection and the store.
func (s *Service) Close() error {
	s.bus.Close()
	if s.mqttPub != nil {
		s.mqttPub.Disconnect()
	}
	return s.closeStore()
}

// backlogSize counts the machines currently due inside the configured
// horizon; it feeds the backlog gauge.
func (s *Service) backlogSize() int {
	now := time.Now().UTC()
	engine := backlog.Engine{
		Assets:      s.State.Assets.All(),
		Assignments: s.State.Assignments.All(),
		OverdueDays: s.cfg.Backlog.OverdueDays,
		HorizonDays: s.cfg.Backlog.HorizonDays,
	}
	return len(engine.Due(now, backlog.Window{To: now.AddDate(0, 0, s.cfg.Backlog.HorizonDays)}))
}

func (s *Service) closeStore() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
