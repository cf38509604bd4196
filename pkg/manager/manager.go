// Package manager composes the in-memory file structure with the JSON
// document store behind a single facade used by the CLI and the HTTP
// server.
package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/filestruct/filestruct/internal/models"
	"github.com/filestruct/filestruct/pkg/config"
	"github.com/filestruct/filestruct/pkg/store"
)

// Manager owns one FileStructure per session and keeps it in sync with the
// store. Mutations auto-save, matching the load-then-use protocol of the
// persisted document.
type Manager struct {
	config     *config.Config
	logger     *logrus.Logger
	store      *store.Store
	structure  *models.FileStructure
	startTime  time.Time
	lastOpTime time.Time
	mu         sync.RWMutex
	tracer     trace.Tracer
}

// New creates a manager, loading the persisted structure when the store
// already holds one and starting empty otherwise.
func New(cfg *config.Config, logger *logrus.Logger) (*Manager, error) {
	st, err := store.New(cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	m := &Manager{
		config:     cfg,
		logger:     logger,
		store:      st,
		startTime:  time.Now(),
		lastOpTime: time.Now(),
		tracer:     otel.Tracer("filestruct"),
	}

	exists, err := st.Exists(cfg.Store.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to probe store: %w", err)
	}
	if exists {
		if err := m.Load(context.Background()); err != nil {
			return nil, err
		}
		logger.Infof("Loaded existing file structure from %s", cfg.Store.Filename)
	} else {
		m.structure = models.NewFileStructure()
		if err := m.Save(context.Background()); err != nil {
			return nil, err
		}
		logger.Info("Initialized new file structure")
	}

	return m, nil
}

// Save persists the current structure to the store.
func (m *Manager) Save(ctx context.Context) error {
	_, span := m.tracer.Start(ctx, "save_structure")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	text, err := m.structure.ToText()
	if err != nil {
		return fmt.Errorf("failed to serialize structure: %w", err)
	}
	if err := m.store.Write(m.config.Store.Filename, text); err != nil {
		return err
	}
	m.lastOpTime = time.Now()
	m.logger.Debugf("Saved file structure to %s", m.config.Store.Filename)
	return nil
}

// Load replaces the in-memory structure with the persisted one. The swap
// only happens after the whole document imported cleanly.
func (m *Manager) Load(ctx context.Context) error {
	_, span := m.tracer.Start(ctx, "load_structure")
	defer span.End()

	text, err := m.store.Read(m.config.Store.Filename)
	if err != nil {
		return err
	}
	structure, err := models.FromText(text)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.structure = structure
	m.lastOpTime = time.Now()
	return nil
}

// AddDirectory adds a directory under the given path and saves. An empty
// path targets the top level.
func (m *Manager) AddDirectory(ctx context.Context, path, name string) error {
	_, span := m.tracer.Start(ctx, "add_directory")
	defer span.End()
	span.SetAttributes(attribute.String("entry.path", path), attribute.String("entry.name", name))

	m.mu.Lock()
	defer m.mu.Unlock()

	if path == "" {
		if _, err := m.structure.AddDirectory(name); err != nil {
			return err
		}
	} else {
		parent, err := m.resolve(path)
		if err != nil {
			return err
		}
		if _, err := parent.AddDirectory(name); err != nil {
			return err
		}
	}

	m.logger.Infof("Added directory %q at path %q", name, path)
	return m.saveLocked()
}

// AddFile adds a file under the given path and saves. Content may be nil.
func (m *Manager) AddFile(ctx context.Context, path, name string, content *string) error {
	_, span := m.tracer.Start(ctx, "add_file")
	defer span.End()
	span.SetAttributes(attribute.String("entry.path", path), attribute.String("entry.name", name))

	m.mu.Lock()
	defer m.mu.Unlock()

	parent, err := m.resolve(path)
	if err != nil {
		return err
	}
	if content != nil {
		_, err = parent.AddFileWithContent(name, *content)
	} else {
		_, err = parent.AddFile(name)
	}
	if err != nil {
		return err
	}

	m.logger.Infof("Added file %q at path %q", name, path)
	return m.saveLocked()
}

// RemoveDirectory removes a directory (cascading) and saves.
func (m *Manager) RemoveDirectory(ctx context.Context, path, name string) error {
	_, span := m.tracer.Start(ctx, "remove_directory")
	defer span.End()
	span.SetAttributes(attribute.String("entry.path", path), attribute.String("entry.name", name))

	m.mu.Lock()
	defer m.mu.Unlock()

	if path == "" {
		if err := m.structure.RemoveDirectory(name); err != nil {
			return err
		}
	} else {
		parent, err := m.resolve(path)
		if err != nil {
			return err
		}
		if err := parent.RemoveDirectory(name); err != nil {
			return err
		}
	}

	m.logger.Infof("Removed directory %q at path %q", name, path)
	return m.saveLocked()
}

// RemoveFile removes a file and saves.
func (m *Manager) RemoveFile(ctx context.Context, path, name string) error {
	_, span := m.tracer.Start(ctx, "remove_file")
	defer span.End()
	span.SetAttributes(attribute.String("entry.path", path), attribute.String("entry.name", name))

	m.mu.Lock()
	defer m.mu.Unlock()

	parent, err := m.resolve(path)
	if err != nil {
		return err
	}
	if err := parent.RemoveFile(name); err != nil {
		return err
	}

	m.logger.Infof("Removed file %q at path %q", name, path)
	return m.saveLocked()
}

// resolve maps a slash-separated path to its directory. Callers hold the
// lock. Files can only live inside a directory, so an empty path is not a
// valid file location and resolves to NotFoundError.
func (m *Manager) resolve(path string) (*models.Directory, error) {
	if path == "" {
		return nil, &models.NotFoundError{Kind: "directory", Name: path, Parent: "/"}
	}
	dir := m.structure.GetDirectoryByPath(path)
	if dir == nil {
		return nil, &models.NotFoundError{Kind: "directory", Name: path, Parent: "/"}
	}
	return dir, nil
}

// Export returns a plain-data snapshot of the structure.
func (m *Manager) Export() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.structure.Export()
}

// ListDirectories returns the top-level directory names.
func (m *Manager) ListDirectories() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.structure.ListDirectories()
}

// Structure returns the underlying structure for read-only walks, e.g. by
// the report generator. Serve-mode callers must not mutate it.
func (m *Manager) Structure() *models.FileStructure {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.structure
}

// Display renders the structure as indented JSON for human consumption.
func (m *Manager) Display() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, err := json.MarshalIndent(m.structure.Export(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render structure: %w", err)
	}
	return string(b), nil
}

// Info returns session metadata for the server-info endpoint.
func (m *Manager) Info() models.ManagerInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return models.ManagerInfo{
		StartTime:  m.startTime,
		LastOpTime: m.lastOpTime,
		StoreDir:   m.store.Dir(),
		Filename:   m.config.Store.Filename,
	}
}
