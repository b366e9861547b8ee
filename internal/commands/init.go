package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/graft-dev/graft/internal/config"
)

// starterSchema is the schema written by graft init: two node types and a
// relationship type with properties, enough to see every generated shape.
const starterSchema = `type Person {
  personId: ID!
  name: String
  born: Date
  actedIn: [ACTED_IN]
}

type Movie {
  movieId: ID!
  title: String
  released: DateTime
}

type ACTED_IN @relation(name: "ACTED_IN", from: "Person", to: "Movie") {
  roles: [String]
}
`

// InitOptions are the answers collected by the init form.
type InitOptions struct {
	ProjectName     string
	EnableMutations bool
}

// InitCommand scaffolds a new project: graft.json plus a starter schema.
type InitCommand struct {
	filesystem FileSystem
	output     Output

	// For testing: if set, skip prompting.
	testOptions *InitOptions
}

// NewInitCommand creates an init command with default dependencies.
func NewInitCommand() *InitCommand {
	return &InitCommand{
		filesystem: osFileSystem{},
		output:     defaultOutput{},
	}
}

// Init dispatches the init command.
func (c *Controller) Init(ctx context.Context) error {
	return NewInitCommand().Run(ctx)
}

// Run prompts for the project options and scaffolds the project directory.
func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

// RunWithOptions runs init; tea program options are forwarded to the form so
// tests can drive it headlessly.
func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	var options *InitOptions
	var err error

	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	if err := ic.scaffold(options); err != nil {
		return fmt.Errorf("failed to scaffold project: %w", err)
	}

	ic.output.Printf("created project %s\n", options.ProjectName)
	return nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	var projectName string
	enableMutations := true

	form := ic.createInitForm(&projectName, &enableMutations)

	if len(opts) > 0 {
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return &InitOptions{
		ProjectName:     projectName,
		EnableMutations: enableMutations,
	}, nil
}

func (ic *InitCommand) createInitForm(projectName *string, enableMutations *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Name of your new graft project").
				Value(projectName).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("project name cannot be empty")
					}
					if _, err := ic.filesystem.Stat(s); err == nil {
						return fmt.Errorf("directory %s already exists", s)
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Generate mutations?").
				Description("Create, update, delete and relationship mutations").
				Value(enableMutations),
		),
	)
}

// scaffold writes the project directory, configuration and starter schema.
func (ic *InitCommand) scaffold(options *InitOptions) error {
	if err := os.MkdirAll(options.ProjectName, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	cfg := config.Config{
		Name:   options.ProjectName,
		Schema: "./schema.graphql",
		Output: "./augmented.graphql",
		Augment: config.AugmentConfig{
			Query:    config.OperationToggle{Enabled: true},
			Mutation: config.OperationToggle{Enabled: options.EnableMutations},
		},
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	configPath := filepath.Join(options.ProjectName, "graft.json")
	if err := ic.filesystem.WriteFile(configPath, append(data, '\n'), 0o644); err != nil {
		return err
	}

	schemaPath := filepath.Join(options.ProjectName, "schema.graphql")
	return ic.filesystem.WriteFile(schemaPath, []byte(starterSchema), 0o644)
}
