package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/thiagokokada/gitweb-go/internal/buildinfo"
	"github.com/thiagokokada/gitweb-go/internal/config"
	"github.com/thiagokokada/gitweb-go/internal/git"
	"github.com/thiagokokada/gitweb-go/internal/web"
)

func Run() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	fs := flag.NewFlagSet("gitweb-go", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	root := fs.String("root", "", "directory scanned for repositories (default \".\")")
	listen := fs.String("listen", "", "HTTP listen address (default \":8080\")")
	pageSize := fs.Int("pagesize", 0, "commits per log page (default 10)")
	noWatch := fs.Bool("nowatch", false, "disable automatic rescan when the root changes")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(buildinfo.Version())
		return nil
	}
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// Flags given on the command line win over the config file.
	if *root != "" {
		cfg.Root = *root
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *pageSize > 0 {
		cfg.PageSize = *pageSize
	}

	registry := git.NewRegistry(cfg.Root)
	if err := registry.Scan(); err != nil {
		return err
	}
	defer registry.Close()
	if !*noWatch {
		if err := registry.Watch(); err != nil {
			slog.Error("auto rescan disabled", slog.Any("error", err))
		}
	}

	server := web.NewServer(registry, cfg.PageSize)
	slog.Info("serving", slog.String("listen", cfg.Listen), slog.String("root", cfg.Root))
	return http.ListenAndServe(cfg.Listen, server.Handler())
}
