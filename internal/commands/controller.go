// Package commands contains the CLI commands for the application.
package commands

import (
	"fmt"
	"os"

	"github.com/graft-dev/graft/internal/config"
)

// Flags holds the global CLI flags.
type Flags struct {
	LogLevel string
}

// Controller dispatches CLI invocations to the command implementations.
type Controller struct {
	Flags *Flags
}

// Shared command dependencies, interface-shaped so tests can inject fakes.

// ConfigLoader loads the project configuration.
type ConfigLoader interface {
	LoadConfig() (*config.Config, string, error)
}

// FileSystem is the subset of file operations commands perform.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
}

// Output receives user-facing command output.
type Output interface {
	Printf(format string, a ...any)
	Println(a ...any)
}

type defaultConfigLoader struct{}

func (l *defaultConfigLoader) LoadConfig() (*config.Config, string, error) {
	return config.LoadConfig()
}

type osFileSystem struct{}

func (osFileSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}
func (osFileSystem) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

type defaultOutput struct{}

func (defaultOutput) Printf(format string, a ...any) { fmt.Printf(format, a...) }
func (defaultOutput) Println(a ...any)               { fmt.Println(a...) }
