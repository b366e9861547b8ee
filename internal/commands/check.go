package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/graft-dev/graft/internal/augment"
)

// CheckCommand runs the augmentation pipeline without writing output, so
// schema authors can validate their source IDL.
type CheckCommand struct {
	deps GenerateDependencies
}

// NewCheckCommand creates a check command with default dependencies.
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{
		deps: GenerateDependencies{
			ConfigLoader: &defaultConfigLoader{},
			FileSystem:   osFileSystem{},
			Output:       defaultOutput{},
		},
	}
}

// WithDependencies injects custom dependencies for testing.
func (cc *CheckCommand) WithDependencies(deps GenerateDependencies) *CheckCommand {
	cc.deps = deps
	return cc
}

// Execute parses and augments the project schema, reporting the outcome.
func (cc *CheckCommand) Execute(ctx context.Context) error {
	cfg, projectRoot, err := cc.deps.ConfigLoader.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}

	if _, err := RunAugmentation(cfg, projectRoot, cc.deps.FileSystem); err != nil {
		var serr *augment.StructuralError
		if errors.As(err, &serr) {
			cc.deps.Output.Printf("schema error in type %q", serr.Type)
			if serr.Field != "" {
				cc.deps.Output.Printf(", field %q", serr.Field)
			}
			cc.deps.Output.Printf(": %s\n", serr.Reason)
		}
		return err
	}

	cc.deps.Output.Println("schema is augmentable")
	return nil
}

// Check dispatches the check command.
func (c *Controller) Check(ctx context.Context) error {
	return NewCheckCommand().Execute(ctx)
}
