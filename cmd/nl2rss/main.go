package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/nl2rss/nl2rss/pkg/config"
	"github.com/nl2rss/nl2rss/pkg/feed"
	"github.com/nl2rss/nl2rss/pkg/ingest"
	"github.com/nl2rss/nl2rss/pkg/mail"
	"github.com/nl2rss/nl2rss/pkg/metrics"
	"github.com/nl2rss/nl2rss/pkg/repository"
	"github.com/nl2rss/nl2rss/pkg/storage"
	"github.com/nl2rss/nl2rss/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled or one of them fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// reconfigure logger to hide the mailbox password
	SetupLog(opts.Debug, cfg.IMAP.Password)

	lgr.Printf("[INFO] starting nl2rss version %s", revision)
	lgr.Printf("[DEBUG] configuration loaded from %s", opts.Config)

	rec := metrics.Default()
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		Metrics:         rec,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	// the main feed must exist before the first source is created
	if _, err := repos.Feed.GetMainFeed(ctx); err != nil {
		return fmt.Errorf("failed to prepare main feed: %w", err)
	}

	store := storage.NewOS(cfg.Content.Path)

	imapCfg := cfg.GetIMAPConfig()
	connector := mail.NewConnector(mail.ConnectorConfig{
		Host:     imapCfg.Host,
		Port:     imapCfg.Port,
		TLS:      imapCfg.UseTLS(),
		User:     imapCfg.User,
		Password: imapCfg.Password,
		Box:      imapCfg.Box,
		Retries:  imapCfg.Retries,
	})

	pipeline := ingest.NewPipeline(repos.Source, repos.Article, store)
	worker := ingest.NewWorker(connector, pipeline, ingest.WorkerConfig{})

	rssCfg := cfg.GetRSSConfig()
	materializer := feed.NewMaterializer(repos.Article, store, feed.Config{
		BaseURL:   cfg.GetBaseURL(),
		Limit:     rssCfg.Limit,
		CacheTime: rssCfg.CacheTime,
		Metrics:   rec,
	})

	srv := server.New(server.Params{
		Config:   cfg,
		Sources:  repos.Source,
		Feeds:    repos.Feed,
		Articles: repos.Article,
		Bodies:   store,
		Renderer: materializer,
		DB:       repos,
		Version:  revision,
		Debug:    opts.Debug,
	})

	g, gctx := errgroup.WithContext(ctx)

	if imapCfg.Resync != "" {
		resync, err := ingest.NewResync(imapCfg.Resync, worker.Requests())
		if err != nil {
			return fmt.Errorf("failed to set up resync: %w", err)
		}
		resync.Start(gctx)
	}

	g.Go(func() error {
		if err := worker.Run(gctx); err != nil {
			return fmt.Errorf("mail ingestion failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// SetupLog configures lgr and the std logger, secs are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

