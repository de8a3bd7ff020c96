package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"

	"artistpulse/internal/analysis"
	"artistpulse/internal/cmdlog"
	"artistpulse/internal/config"
	"artistpulse/internal/httpapi"
	"artistpulse/internal/imagecheck"
	"artistpulse/internal/llm"
	"artistpulse/internal/logging"
	"artistpulse/internal/report"
	"artistpulse/internal/social"
	"artistpulse/internal/theme"
	"artistpulse/internal/warehouse"
)

const defaultConfigPath = "./artistpulse.yaml"

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "serve":
		cmdServe()
	case "report":
		cmdReport()
	case "import-warehouse":
		cmdImportWarehouse()
	default:
		printHelp()
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: artistpulse <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init              Create a config file at ./artistpulse.yaml")
	fmt.Println("  serve             Run the HTTP API")
	fmt.Println("  report            Print the analysis report for one user as JSON")
	fmt.Println("  import-warehouse  Copy a JSON warehouse file into a SQLite store")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func loadConfig(path string) (config.Config, logging.Logger) {
	config.LoadDotEnv()
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}
	return cfg, logging.New(cfg.Log.Level)
}

// app holds the wired services shared by serve and report.
type app struct {
	reports *report.Aggregator
	images  *imagecheck.Service
	store   warehouse.Store
}

func newApp(cfg config.Config, log logging.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := warehouse.Open(cfg.Warehouse)
	if err != nil {
		return nil, err
	}
	soc := social.NewService(social.NewHTTPClient(cfg.Social), social.WithContentLimit(cfg.Social.ContentLimit))
	ai := llm.NewClient(cfg.LLM)
	agg := report.New(store, soc, analysis.New(ai, log), log,
		report.WithPreferredPlatform(cfg.Social.PreferredPlatform),
		report.WithHistoricRefresh(cfg.Social.RefreshHistoric),
	)
	return &app{reports: agg, images: imagecheck.New(ai), store: store}, nil
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", defaultConfigPath, "path to write config")
	_ = fs.Parse(os.Args[2:])
	if err := config.Save(*path, config.Default()); err != nil {
		fatal(err)
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
}

func cmdServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	addr := fs.String("addr", "", "listen address (overrides config)")
	_ = fs.Parse(os.Args[2:])
	cfg, log := loadConfig(*cfgPath)
	if *addr != "" {
		cfg.Server.ListenAddr = *addr
	}
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err := cmdlog.Run(log, "serve", func() error {
		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.store.Close()
		return httpapi.Serve(ctx, cfg.Server.ListenAddr, httpapi.NewRouter(a.reports, a.images, log), log)
	})
	if err != nil {
		fatal(err)
	}
}

func cmdReport() {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	userID := fs.String("user", "", "user id to report on")
	_ = fs.Parse(os.Args[2:])
	if *userID == "" {
		fatal(errors.New("-user is required"))
	}
	cfg, log := loadConfig(*cfgPath)
	// keep stdout for the report itself
	log.SetOutput(os.Stderr)

	err := cmdlog.Run(log, "report", func() error {
		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.store.Close()
		rep, err := a.reports.Build(context.Background(), *userID)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	})
	if err != nil {
		fatal(err)
	}
}

func cmdImportWarehouse() {
	fs := flag.NewFlagSet("import-warehouse", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	from := fs.String("from", "./data/warehouse.json", "JSON warehouse file")
	to := fs.String("to", "./data/warehouse.db", "SQLite database to write")
	_ = fs.Parse(os.Args[2:])
	_, log := loadConfig(*cfgPath)

	err := cmdlog.Run(log, "import_warehouse", func() error {
		src, err := warehouse.OpenJSON(*from)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(*to), 0o755); err != nil {
			return err
		}
		dst, err := warehouse.OpenSQLite(*to)
		if err != nil {
			return err
		}
		defer dst.Close()
		n, err := warehouse.Import(context.Background(), src, dst)
		if err != nil {
			return err
		}
		log.WithFields(logging.Fields{"records": n, "to": *to}).Info("warehouse imported")
		return nil
	})
	if err != nil {
		fatal(err)
	}
}
