package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/blockgo/server/internal/config"
	"github.com/blockgo/server/internal/core/event"
	coresys "github.com/blockgo/server/internal/core/system"
	"github.com/blockgo/server/internal/data"
	"github.com/blockgo/server/internal/handler"
	gonet "github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"github.com/blockgo/server/internal/persist"
	"github.com/blockgo/server/internal/scripting"
	"github.com/blockgo/server/internal/system"
	"github.com/blockgo/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              blockgo  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("BLOCKGO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Lifecycle journal (optional)
	printSection("journal")

	var journal system.JournalWriter
	if persist.Enabled(cfg.Database) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := persist.RunMigrations(ctx, db.Pool, log)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printStat("schema version", int(version))
		journal = persist.NewJournalRepo(db)
	} else {
		printOK("disabled (no dsn)")
	}
	fmt.Println()

	// 4. Scripts and spawn tables
	printSection("data")

	luaEngine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printStat("behaviors", len(luaEngine.Names()))

	spawnList, err := data.LoadSpawnList(cfg.Data.SpawnList)
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}

	// 5. World core
	bus := event.NewBus()
	registry := world.NewRegistry(bus, log)
	clients := world.NewClients()
	visibility := system.NewVisibilitySystem(registry, clients, cfg.World.ChunkDepth, log)

	spawned := spawnEntities(registry, spawnList, luaEngine, log)
	printStat("entities spawned", spawned)
	fmt.Println()

	event.Subscribe(bus, func(ev event.ClientJoined) {
		log.Debug("client joined", zap.String("uuid", ev.SessionUUID), zap.Int("online", clients.Len()))
	})

	// 6. Create packet handler registry and register handlers
	pktReg := packet.NewRegistry(log)
	deps := &handler.Deps{
		Config:     cfg,
		Log:        log,
		Registry:   registry,
		Clients:    clients,
		Visibility: visibility,
		Events:     bus,
	}
	handler.RegisterAll(pktReg, deps)

	// 7. Create network server
	netServer, err := gonet.NewServer(cfg.Network.BindAddress, gonet.SessionOptions{
		InQueueSize:   cfg.Network.InQueueSize,
		OutQueueSize:  cfg.Network.OutQueueSize,
		PacketsPerSec: cfg.Network.PacketsPerSecond,
		WriteTimeout:  cfg.Network.WriteTimeout,
		ReadTimeout:   cfg.Network.ReadTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.AcceptLoop()

	// 8. Create systems and register with runner
	store := gonet.NewSessionStore()
	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(netServer, pktReg, store, deps, cfg.Network.MaxPacketsPerTick, log))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewEntitySystem(registry))
	runner.Register(visibility)
	runner.Register(system.NewOutputSystem(store))
	var journalSys *system.JournalSystem
	if journal != nil {
		journalSys = system.NewJournalSystem(bus, journal, cfg.Journal.FlushInterval, cfg.Journal.MaxBatch, log)
		runner.Register(journalSys)
	}
	runner.Register(system.NewDespawnSystem(registry))

	// 9. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("listening on %s", netServer.Addr().String()))
	printReady(fmt.Sprintf("game loop running (tick: %s)", cfg.Network.TickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Network.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			netServer.Shutdown()
			store.ForEach(func(s *gonet.Session) { s.Close() })
			// One last pass so leaves and despawns reach the journal.
			runner.Tick(cfg.Network.TickRate)
			bus.SwapBuffers()
			bus.DispatchAll()
			if journalSys != nil {
				journalSys.Flush()
			}
			log.Info("server stopped", zap.Int("entities", registry.Len()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
