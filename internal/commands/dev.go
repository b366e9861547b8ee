package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/graft-dev/graft/internal/config"
	"github.com/graft-dev/graft/internal/dev"
)

// DevDependencies for the dev command.
type DevDependencies struct {
	ConfigLoader   ConfigLoader
	ServerFactory  DevServerFactory
	SignalNotifier SignalNotifier
	Output         Output
}

// DevServerFactory builds the dev loop server.
type DevServerFactory interface {
	NewServer(cfg *config.Config, projectRoot string) DevServer
}

// DevServer runs the watch-and-regenerate loop.
type DevServer interface {
	Start(ctx context.Context) error
}

// SignalNotifier abstracts signal registration for tests.
type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type defaultDevServerFactory struct{}

func (f *defaultDevServerFactory) NewServer(cfg *config.Config, projectRoot string) DevServer {
	gen := &fileGenerator{cfg: cfg, projectRoot: projectRoot}
	return dev.NewServer(cfg, projectRoot, gen, log.Logger)
}

// fileGenerator adapts the shared augmentation pipeline to the dev loop's
// Generator interface.
type fileGenerator struct {
	cfg         *config.Config
	projectRoot string
}

func (g *fileGenerator) Generate() error {
	sdl, err := RunAugmentation(g.cfg, g.projectRoot, osFileSystem{})
	if err != nil {
		return err
	}
	outPath := filepath.Join(g.projectRoot, g.cfg.Output)
	return os.WriteFile(outPath, []byte(sdl), 0o644)
}

type defaultSignalNotifier struct{}

func (defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
func (defaultSignalNotifier) Stop(c chan<- os.Signal)                     { signal.Stop(c) }

// DevCommand encapsulates the dev loop with injected dependencies.
type DevCommand struct {
	deps DevDependencies
}

// NewDevCommand creates a dev command with default dependencies.
func NewDevCommand() *DevCommand {
	return &DevCommand{
		deps: DevDependencies{
			ConfigLoader:   &defaultConfigLoader{},
			ServerFactory:  &defaultDevServerFactory{},
			SignalNotifier: defaultSignalNotifier{},
			Output:         defaultOutput{},
		},
	}
}

// WithDependencies injects custom dependencies for testing.
func (dc *DevCommand) WithDependencies(deps DevDependencies) *DevCommand {
	dc.deps = deps
	return dc
}

// Execute runs the dev command until interrupted.
func (dc *DevCommand) Execute(ctx context.Context) error {
	cfg, projectRoot, err := dc.deps.ConfigLoader.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}

	dc.deps.Output.Printf("watching %s\n", filepath.Join(projectRoot, cfg.Schema))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	dc.deps.SignalNotifier.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer dc.deps.SignalNotifier.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			dc.deps.Output.Println("\nshutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	server := dc.deps.ServerFactory.NewServer(cfg, projectRoot)
	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("dev loop error: %w", err)
	}
	return nil
}

// Dev dispatches the dev command.
func (c *Controller) Dev(ctx context.Context) error {
	return NewDevCommand().Execute(ctx)
}
