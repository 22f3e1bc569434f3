// Command server wires the simulation core together: config, the static
// catalog, the run registry, the tick scheduler, and the delta
// broadcaster. Connection acceptance, framing, and wire encoding are a
// transport layer's job (spec §1 "out of scope") — this binary exposes
// the pieces a transport layer calls into (runregistry.Registry,
// intent.Handler, broadcast.Broadcaster) and supervises their background
// loops.
//
// Grounded on the teacher's cmd/gameserver/main.go: load config before
// the logger (to pick its level), slog.SetDefault with a text handler,
// signal-driven cancellation, errgroup-supervised background loops.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/konopkja/dungeon-link-sub001/internal/broadcast"
	"github.com/konopkja/dungeon-link-sub001/internal/catalog"
	"github.com/konopkja/dungeon-link-sub001/internal/config"
	"github.com/konopkja/dungeon-link-sub001/internal/intent"
	"github.com/konopkja/dungeon-link-sub001/internal/model"
	"github.com/konopkja/dungeon-link-sub001/internal/oracle"
	"github.com/konopkja/dungeon-link-sub001/internal/runregistry"
	"github.com/konopkja/dungeon-link-sub001/internal/tick"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// Core bundles the wired simulation-core components a transport layer
// calls into: Registry to look up/create Runs, Intents to apply decoded
// client messages, Limiter to gate message rate, and the per-tick
// broadcaster driven internally by the Scheduler.
type Core struct {
	Registry *runregistry.Registry
	Intents  *intent.Handler
	Limiter  *intent.RateLimiter
	Oracle   *oracle.Bridge

	broadcaster *broadcast.Broadcaster
	scheduler   *tick.Scheduler
}

// NewCore wires every simulation-core component from cfg and cat. The
// returned Core's Run method must be called to start its background
// loops.
func NewCore(cfg config.Server, cat *catalog.Catalog) *Core {
	registry := runregistry.New()
	bridge := oracle.New(stubOracleSubmitter)
	registry.OnDestroy = bridge.Forget

	c := &Core{
		Registry:    registry,
		Intents:     intent.New(cat).WithRewardOracle(bridge),
		Limiter:     intent.NewRateLimiter(cfg.RateLimitPerSecond, time.Second),
		Oracle:      bridge,
		broadcaster: broadcast.New(),
	}

	c.scheduler = &tick.Scheduler{
		Catalog:  cat,
		Interval: cfg.TickInterval,
		Runs:     registry.All,
		OnResult: c.broadcastRun,
	}
	return c
}

// broadcastRun computes the post-tick snapshot for run and pushes a
// Frame to every connected client (spec §4.9). A client Send failure is
// logged and otherwise ignored — one unreachable client must not stall
// the Run's tick (spec §7).
func (c *Core) broadcastRun(run *model.Run, _ tick.Result) {
	snap := broadcast.BuildSnapshot(run)
	for _, client := range c.Registry.ClientsInRun(run.ID) {
		frame := c.broadcaster.BuildFrame(client.ClientID(), snap)
		if err := client.Send(frame); err != nil {
			slog.Warn("failed to send frame to client", "run", run.ID, "client", client.ClientID(), "err", err)
		}
	}
}

// JoinRun registers a newly connected client against runID and forces
// its first frame to be a full Snapshot.
func (c *Core) JoinRun(runID uint64, client runregistry.ClientHandle) error {
	if err := c.Registry.AddClient(runID, client); err != nil {
		return err
	}
	c.broadcaster.MarkNeedsFullSync(client.ClientID())
	return nil
}

// LeaveRun unregisters a disconnected client's broadcast and rate-limit
// state (spec §5 "Cancellation/timeouts").
func (c *Core) LeaveRun(runID uint64, clientID uint64) {
	c.Registry.RemoveClient(runID, clientID)
	c.broadcaster.Forget(clientID)
	c.Limiter.Forget(clientID)
}

// Run blocks, driving the tick scheduler until ctx is canceled.
func (c *Core) Run(ctx context.Context) error {
	return c.scheduler.Start(ctx)
}

func run(ctx context.Context) error {
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
	slog.Info("dungeon core starting", "log_level", cfg.LogLevel, "tick_interval", cfg.TickInterval)

	cat := catalog.Load()
	core := NewCore(cfg, cat)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting tick scheduler", "interval", cfg.TickInterval)
		if err := core.Run(gctx); err != nil && gctx.Err() == nil {
			return fmt.Errorf("tick scheduler: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// stubOracleSubmitter is the default reward-oracle Submitter until a real
// wallet/attestation bridge is wired in (spec §1: "treated as an opaque
// reward oracle").
func stubOracleSubmitter(ctx context.Context, claim oracle.Claim) (oracle.Attestation, error) {
	return oracle.Attestation{Token: fmt.Sprintf("stub:%d:%d", claim.RunID, claim.ChestID)}, nil
}

// parseLogLevel converts a config string to slog.Level, defaulting to
// Info on anything unrecognized.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
