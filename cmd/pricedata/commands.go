package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"StockDataset/internal/collector"
	"StockDataset/internal/config"
	"StockDataset/internal/notifier"
	"StockDataset/internal/pipeline"
	"StockDataset/internal/recorder"
	"StockDataset/internal/scheduler"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// newPipeline wires the optional collaborators named in cfg. The Telegram
// notifier is nil unless configured; the returned func releases resources.
func newPipeline(cfg *config.Config) (*pipeline.Pipeline, *notifier.TelegramNotifier, func()) {
	src := collector.NewSource(collector.Options{
		Provider: cfg.Enrichment.Provider,
		APIKey:   cfg.Enrichment.APIKey,
		BaseURL:  cfg.Enrichment.BaseURL,
		Proxy:    cfg.Proxy,
		Timeout:  cfg.Enrichment.Timeout,
	})
	log.Printf("[INFO] enrichment source: %s", src.Name())

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	var (
		n  notifier.Notifier = notifier.NewNoopNotifier()
		tn *notifier.TelegramNotifier
	)
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = notifier.NewRetryNotifier(tn, 3)
	}

	p := pipeline.New(cfg.Input.Dirs, cfg.Output.Dir, src, rec, n)
	return p, tn, func() {
		if err := rec.Close(); err != nil {
			log.Printf("[WARN] close recorder: %v", err)
		}
	}
}

type buildCmd struct{}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "build the price dataset once (default)" }
func (*buildCmd) Usage() string {
	return `pricedata [-config <path>] build

  Locates price files, merges them and writes prices.csv,
  prices-split-adjusted.csv, securities.csv and fundamentals.csv.
`
}
func (*buildCmd) SetFlags(*flag.FlagSet) {}

func (*buildCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	p, _, closeFn := newPipeline(cfg)
	defer closeFn()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := p.Run(ctx)
	if err != nil {
		log.Printf("[FATAL] build: %v", err)
		return subcommands.ExitFailure
	}
	for _, f := range s.Outputs {
		fmt.Println(f)
	}
	return subcommands.ExitSuccess
}

type locateCmd struct{}

func (*locateCmd) Name() string     { return "locate" }
func (*locateCmd) Synopsis() string { return "list the price files a build would read" }
func (*locateCmd) Usage() string {
	return `pricedata [-config <path>] locate

  Prints each located file with the symbol and type it would get.
  Nothing is read or written.
`
}
func (*locateCmd) SetFlags(*flag.FlagSet) {}

func (*locateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	files, secs, err := pipeline.Describe(cfg.Input.Dirs)
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	for _, s := range secs {
		fmt.Printf("%-8s %-7s %s\n", s.Symbol, s.Type, s.SourceFile)
	}
	fmt.Printf("%d files located, %d securities\n", len(files), len(secs))
	return subcommands.ExitSuccess
}

type scheduleCmd struct {
	runOnStart bool
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "rebuild the dataset on the configured cron schedule" }
func (*scheduleCmd) Usage() string {
	return `pricedata [-config <path>] schedule [-now]

  Runs until SIGINT or SIGTERM, rebuilding on schedule.cron.
  With Telegram configured, /build and /status chat commands are served.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "now", os.Getenv("RUN_ON_START") == "true", "also build once at start (env RUN_ON_START=true)")
}

func (c *scheduleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	p, tn, closeFn := newPipeline(cfg)
	defer closeFn()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, p)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()
	log.Printf("[INFO] build scheduled on %q", cfg.Schedule.Cron)

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if c.runOnStart {
		log.Println("[INFO] building now")
		go func() {
			if _, err := sched.RunNow(); err != nil {
				log.Printf("[ERROR] startup build: %v", err)
			}
		}()
	}

	log.Println("[INFO] pricedata is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	return subcommands.ExitSuccess
}
