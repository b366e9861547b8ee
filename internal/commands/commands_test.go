package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/graft-dev/graft/internal/config"
)

// Shared fakes for command tests.

type fakeConfigLoader struct {
	cfg  *config.Config
	root string
	err  error
}

func (l *fakeConfigLoader) LoadConfig() (*config.Config, string, error) {
	return l.cfg, l.root, l.err
}

type fakeFileSystem struct {
	files    map[string][]byte
	writeErr error
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{files: map[string][]byte{}}
}

func (f *fakeFileSystem) ReadFile(name string) ([]byte, error) {
	if data, ok := f.files[name]; ok {
		return data, nil
	}
	return nil, os.ErrNotExist
}

func (f *fakeFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[name] = data
	return nil
}

func (f *fakeFileSystem) Stat(name string) (os.FileInfo, error) {
	if _, ok := f.files[name]; ok {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

type fakeOutput struct {
	lines []string
}

func (o *fakeOutput) Printf(format string, a ...any) {
	o.lines = append(o.lines, fmt.Sprintf(format, a...))
}

func (o *fakeOutput) Println(a ...any) {
	o.lines = append(o.lines, fmt.Sprintln(a...))
}

func (o *fakeOutput) String() string {
	return strings.Join(o.lines, "")
}

type fakeChecker struct {
	err     error
	checked []string
}

func (c *fakeChecker) Check(sdl string) error {
	c.checked = append(c.checked, sdl)
	return c.err
}

func testProjectConfig() *config.Config {
	return &config.Config{
		Name:   "movies",
		Schema: "./schema.graphql",
		Output: "./augmented.graphql",
		Augment: config.AugmentConfig{
			Query:    config.OperationToggle{Enabled: true},
			Mutation: config.OperationToggle{Enabled: true},
		},
	}
}

const testSchema = `
type Person {
  personId: ID!
  name: String
}
`
