package cardbrowser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Service owns the configuration, the loaded catalog and its file watcher.
type Service struct {
	cfgMu sync.RWMutex
	cfg   Config

	catMu   sync.RWMutex
	catalog Catalog

	watcher *CatalogWatcher
	logger  *zap.Logger
}

// NewService loads the catalog named by cfg. A missing catalog file is
// created from DefaultCatalog so there is always something to browse.
func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	s := &Service{cfg: cfg, logger: logger}
	if err := EnsureCatalogFile(cfg.CatalogPath, DefaultCatalog()); err != nil {
		logger.Warn("could not create default catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	cat, err := LoadCatalogWithOptions(cfg.CatalogPath, s.parseOptions())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		logger.Warn("catalog missing, using built-in sample", zap.String("path", cfg.CatalogPath))
		cat = DefaultCatalog()
	}
	s.catalog = cat
	logger.Info("catalog loaded", zap.String("path", cfg.CatalogPath), zap.Int("slides", len(cat.Slides)),
		zap.Int("criteria", len(cat.Criteria)), zap.Int("presets", len(cat.Presets)))
	return s, nil
}

// Close stops the catalog watcher.
func (s *Service) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
	return nil
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Clone()
}

// UpdateConfig replaces the configuration and returns the sanitized copy.
func (s *Service) UpdateConfig(cfg Config) Config {
	cfg.ApplyDefaults()
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
	return cfg
}

// Catalog returns the current catalog.
func (s *Service) Catalog() Catalog {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	return s.catalog
}

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Reload re-reads the catalog file.
func (s *Service) Reload() (Catalog, error) {
	cfg := s.Config()
	cat, err := LoadCatalogWithOptions(cfg.CatalogPath, s.parseOptions())
	if err != nil {
		return Catalog{}, fmt.Errorf("reload catalog: %w", err)
	}
	s.setCatalog(cat)
	return cat, nil
}

// Watch reloads the catalog whenever its file changes and hands every new
// catalog to onLoad. It is a no-op when watching is disabled in the config.
func (s *Service) Watch(ctx context.Context, onLoad func(Catalog)) error {
	cfg := s.Config()
	if !cfg.WatchCatalog || s.watcher != nil {
		return nil
	}
	w, err := NewCatalogWatcher(cfg.CatalogPath, s.parseOptions(), func(cat Catalog) {
		s.setCatalog(cat)
		if onLoad != nil {
			onLoad(cat)
		}
	}, s.logger)
	if err != nil {
		return fmt.Errorf("watch catalog: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return fmt.Errorf("watch catalog: %w", err)
	}
	s.watcher = w
	return nil
}

func (s *Service) setCatalog(cat Catalog) {
	s.catMu.Lock()
	s.catalog = cat
	s.catMu.Unlock()
}

// parseOptions supplies built-in criteria and presets for CSV catalogs, which
// only describe slides.
func (s *Service) parseOptions() CatalogParseOptions {
	return CatalogParseOptions{
		Criteria: DefaultCriteria(),
		Presets:  DefaultPresets(),
		Logger:   s.logger,
	}
}

// EnsureCatalogFile writes cat as YAML to path when the file does not exist yet.
func EnsureCatalogFile(path string, cat Catalog) error {
	if path == "" {
		return nil
	}
	clean := filepath.Clean(path)
	if _, err := os.Stat(clean); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat catalog: %w", err)
	}
	if dir := filepath.Dir(clean); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	data, err := MarshalCatalogYAML(cat)
	if err != nil {
		return err
	}
	if err := os.WriteFile(clean, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
