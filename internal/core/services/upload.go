package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdoc-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService drives documents through the upload lifecycle.
//
// It applies the optimistic update first (a pending record under a
// temporary identifier), then reconciles with the server result: the
// pending record is swapped for the final one in a single registry
// operation, so the two identifiers are never visible together.
type UploadService struct {
	registry driven.DocumentRegistry
	gateway  driven.Gateway
	state    driven.StateStore
	watcher  driving.StatusWatcher

	now   func() time.Time
	newID func() string
}

// NewUploadService creates an upload service. state and watcher may be
// nil; persistence and async ingestion polling are then disabled.
func NewUploadService(
	registry driven.DocumentRegistry,
	gateway driven.Gateway,
	state driven.StateStore,
	watcher driving.StatusWatcher,
) *UploadService {
	return &UploadService{
		registry: registry,
		gateway:  gateway,
		state:    state,
		watcher:  watcher,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Submit uploads the file at path.
//
// No local validation happens beyond the file being openable; accepted
// extensions are advisory and enforced server-side. Failures leave an
// Error record behind (still dismissible) and are never retried here.
func (s *UploadService) Submit(ctx context.Context, session domain.UserSession, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	tempID := domain.TempIDPrefix + s.newID()
	rec := domain.DocumentRecord{
		ID:        tempID,
		Title:     filepath.Base(path),
		Status:    domain.StatusUploading,
		Progress:  0,
		CreatedAt: s.now(),
	}
	if err := s.registry.Append(ctx, rec); err != nil {
		return fmt.Errorf("append pending record: %w", err)
	}
	s.persist(ctx)

	onProgress := func(percent int) {
		// Stale notifications for a dismissed record drop silently.
		_ = s.registry.UpdateProgress(ctx, tempID, percent)
	}

	result, err := s.gateway.Upload(ctx, session, rec.Title, file, info.Size(), onProgress)
	if err != nil {
		// The temporary identifier is retained so the failed entry
		// stays visible and dismissible.
		_ = s.registry.UpdateStatus(ctx, tempID, domain.StatusError, 0)
		s.persist(ctx)
		return fmt.Errorf("upload %s: %w", rec.Title, err)
	}

	final := domain.DocumentRecord{
		ID:        result.DocID,
		Title:     rec.Title,
		CreatedAt: rec.CreatedAt,
	}
	if result.JobID == "" {
		// Synchronous ingestion: the document is queryable already.
		final.Status = domain.StatusReady
		final.Progress = 100
	} else {
		final.Status = domain.StatusProcessing
		final.Progress = 0
	}

	if err := s.registry.Replace(ctx, tempID, final); err != nil {
		if !errors.Is(err, domain.ErrStateConflict) {
			return fmt.Errorf("reconcile %s: %w", rec.Title, err)
		}
		// The pending record was dismissed mid-flight. Do not
		// resurrect it; a later sync picks the document up.
		logger.Debug("upload: pending record %s gone, dropping reconcile", tempID)
		return nil
	}
	s.persist(ctx)

	if result.JobID != "" && s.watcher != nil {
		s.watcher.Watch(ctx, session, result.JobID, result.DocID)
	}
	return nil
}

// Dismiss removes a failed record from the registry.
func (s *UploadService) Dismiss(ctx context.Context, id string) error {
	rec, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status != domain.StatusError {
		return fmt.Errorf("%w: only failed uploads can be dismissed", domain.ErrInvalidInput)
	}
	if err := s.registry.Remove(ctx, id); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// persist flushes the registry snapshot to durable storage.
func (s *UploadService) persist(ctx context.Context) {
	if s.state == nil {
		return
	}
	recs, err := s.registry.List(ctx)
	if err != nil {
		return
	}
	if err := s.state.SaveDocuments(ctx, recs); err != nil {
		logger.Warn("persist documents: %v", err)
	}
}
