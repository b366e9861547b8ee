package dev

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/graft-dev/graft/internal/config"
	"github.com/rs/zerolog"
)

// debounceWindow coalesces editor-induced event bursts into one regeneration.
const debounceWindow = 250 * time.Millisecond

// Generator runs one augmentation pass over the project. Injected so tests
// can observe regeneration without touching the filesystem.
type Generator interface {
	Generate() error
}

// Server is the development loop: an initial generation, then watch and
// regenerate.
type Server struct {
	config      *config.Config
	projectRoot string
	generator   Generator
	logger      zerolog.Logger

	watcher *FileWatcher

	mu      sync.Mutex
	pending *time.Timer
}

// NewServer creates a development server for the given project.
func NewServer(cfg *config.Config, projectRoot string, generator Generator, logger zerolog.Logger) *Server {
	return &Server{
		config:      cfg,
		projectRoot: projectRoot,
		generator:   generator,
		logger:      logger.With().Str("component", "dev-server").Logger(),
	}
}

// Start runs the development loop until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Str("project", s.config.Name).Str("root", s.projectRoot).Msg("starting dev loop")

	s.regenerate()

	watcher, err := NewFileWatcher(s.config.Dev.Watch, s.config.Dev.Exclude, s.logger, s.handleFileChange)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	s.watcher = watcher
	defer s.watcher.Close()

	if err := s.watcher.AddDirectory(s.projectRoot); err != nil {
		return fmt.Errorf("failed to watch project directory: %w", err)
	}

	return s.watcher.Start(ctx)
}

// handleFileChange schedules a debounced regeneration for relevant events.
func (s *Server) handleFileChange(path string, op fsnotify.Op) {
	if strings.Contains(path, ".tmp") || strings.Contains(path, "~") {
		return
	}
	if op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	relPath, _ := filepath.Rel(s.projectRoot, path)
	s.logger.Info().Str("file", relPath).Str("op", op.String()).Msg("change detected")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = time.AfterFunc(debounceWindow, s.regenerate)
}

func (s *Server) regenerate() {
	start := time.Now()
	if err := s.generator.Generate(); err != nil {
		s.logger.Error().Err(err).Msg("augmentation failed")
		return
	}
	s.logger.Info().Dur("took", time.Since(start)).Str("output", s.config.Output).Msg("schema regenerated")
}
