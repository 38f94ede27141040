package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/oliverbestmann/triangle/orion"
)

func main() {
	configPath := flag.String("config", "", "yaml file with run options")
	variant := flag.String("variant", "", "variant to render: static or rotating")
	flag.Parse()

	orion.SetupLogging(os.Stderr, slog.LevelInfo)

	if err := run(*configPath, *variant); err != nil {
		orion.Report(err)
		os.Exit(1)
	}
}

func run(configPath, variant string) error {
	var opts orion.RunOptions

	if configPath != "" {
		var err error
		if opts, err = orion.LoadConfig(configPath); err != nil {
			return err
		}
	}

	if variant != "" {
		opts.Variant = variant
	}

	opts.ApplyEnv(os.Getenv)
	opts = opts.WithDefaults()

	level, err := opts.Level()
	if err != nil {
		return err
	}

	orion.SetupLogging(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return orion.Run(ctx, opts)
}
