package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/graft-dev/graft/internal/augment"
	"github.com/graft-dev/graft/internal/config"
	"github.com/graft-dev/graft/internal/schema"
)

// GenerateDependencies for the generate command.
type GenerateDependencies struct {
	ConfigLoader ConfigLoader
	FileSystem   FileSystem
	Checker      schema.Checker
	Output       Output
}

// GenerateCommand reads the project schema, runs augmentation and writes the
// augmented SDL to the configured output file.
type GenerateCommand struct {
	deps GenerateDependencies
}

// NewGenerateCommand creates a generate command with default dependencies.
func NewGenerateCommand() *GenerateCommand {
	return &GenerateCommand{
		deps: GenerateDependencies{
			ConfigLoader: &defaultConfigLoader{},
			FileSystem:   osFileSystem{},
			Checker:      schema.NewChecker(),
			Output:       defaultOutput{},
		},
	}
}

// WithDependencies injects custom dependencies for testing.
func (gc *GenerateCommand) WithDependencies(deps GenerateDependencies) *GenerateCommand {
	gc.deps = deps
	return gc
}

// Execute runs one full generation pass.
func (gc *GenerateCommand) Execute(ctx context.Context) error {
	cfg, projectRoot, err := gc.deps.ConfigLoader.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}

	sdl, err := RunAugmentation(cfg, projectRoot, gc.deps.FileSystem)
	if err != nil {
		return err
	}

	if err := gc.deps.Checker.Check(sdl); err != nil {
		return fmt.Errorf("augmented schema failed verification: %w", err)
	}

	outPath := filepath.Join(projectRoot, cfg.Output)
	if err := gc.deps.FileSystem.WriteFile(outPath, []byte(sdl), 0o644); err != nil {
		return fmt.Errorf("failed to write augmented schema: %w", err)
	}

	gc.deps.Output.Printf("wrote augmented schema to %s\n", outPath)
	return nil
}

// RunAugmentation runs the parse-augment-print pipeline for a project and
// returns the augmented SDL. Shared by generate, check and the dev loop.
func RunAugmentation(cfg *config.Config, projectRoot string, fs FileSystem) (string, error) {
	schemaPath := filepath.Join(projectRoot, cfg.Schema)
	src, err := fs.ReadFile(schemaPath)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file: %w", err)
	}

	doc, err := schema.Parse(schemaPath, string(src))
	if err != nil {
		return "", err
	}

	engineCfg := cfg.EngineConfig()
	engineCfg.Logger = log.Logger
	result, err := augment.Augment(doc, nil, engineCfg)
	if err != nil {
		return "", fmt.Errorf("augmentation failed: %w", err)
	}

	return schema.Print(result.Document), nil
}

// Generate dispatches the generate command.
func (c *Controller) Generate(ctx context.Context) error {
	return NewGenerateCommand().Execute(ctx)
}
