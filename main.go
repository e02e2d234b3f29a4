package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/netnix-sa/moquist/internal/config"
	"github.com/netnix-sa/moquist/internal/httpserver"
	"github.com/netnix-sa/moquist/internal/logging"
	"github.com/netnix-sa/moquist/internal/route"
	"github.com/netnix-sa/moquist/internal/schema"
	"github.com/netnix-sa/moquist/internal/value"
)

func main() {
	var scale uint64
	var seed uint64
	var verbose bool

	flag.Uint64Var(&scale, "scale", 16, "number of elements generated for a dynamic array")
	flag.Uint64Var(&seed, "seed", 0, "base seed mixed into every generated value")
	flag.BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	flag.Parse()

	const usage = "usage: moquist [--scale=16] [--seed=0] <config-path> [scale] [seed]"
	if flag.NArg() < 1 || flag.NArg() > 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	configPath := flag.Arg(0)
	for i, target := range []*uint64{&scale, &seed} {
		if flag.NArg() > i+1 {
			if _, err := fmt.Sscan(flag.Arg(i+1), target); err != nil {
				fmt.Fprintln(os.Stderr, usage)
				os.Exit(2)
			}
		}
	}

	logger, err := logging.New(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, configPath, scale, seed); err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, configPath string, scale, seed uint64) error {
	root, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	schemas, err := schema.Ingest(root)
	if err != nil {
		return errors.Wrap(err, "ingesting schemas")
	}
	logger.Info("ingested schemas", zap.Int("count", len(schemas)))

	routes, err := route.Ingest(root)
	if err != nil {
		return errors.Wrap(err, "ingesting routes")
	}
	logger.Info("ingested routes", zap.Int("count", len(routes)))

	server := &httpserver.Server{
		Builder: value.New(schemas),
		Routes:  routes,
		Seed:    seed,
		Scale:   scale,
		Logger:  logger,
	}

	logger.Info("listening", zap.String("addr", "0.0.0.0:80"), zap.Uint64("scale", scale), zap.Uint64("seed", seed))
	return server.ListenAndServe("")
}
