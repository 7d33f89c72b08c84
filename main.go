package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"git.lost.host/meutraa/stepedit/internal/config"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	cfg, command, err := config.Parse(args, os.Stderr)
	if nil != err {
		return err
	}
	if command == "" {
		// help or version was printed
		return nil
	}
	if !cfg.Color {
		color.NoColor = true
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := NewProgram(cfg, logger, os.Stdout)
	return p.Run(ctx, command)
}
