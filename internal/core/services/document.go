package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdocs-labs/askdoc-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService reads the registry and performs server-confirmed
// deletions.
type DocumentService struct {
	registry driven.DocumentRegistry
	gateway  driven.Gateway
	state    driven.StateStore
}

// NewDocumentService creates a document service. state may be nil to
// disable persistence.
func NewDocumentService(
	registry driven.DocumentRegistry,
	gateway driven.Gateway,
	state driven.StateStore,
) *DocumentService {
	return &DocumentService{
		registry: registry,
		gateway:  gateway,
		state:    state,
	}
}

// List returns the registry contents in insertion order.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentRecord, error) {
	return s.registry.List(ctx)
}

// Delete removes a document after server confirmation. On any failure
// the registry is left untouched; there is no local-only deletion.
func (s *DocumentService) Delete(ctx context.Context, session domain.UserSession, id string) error {
	rec, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.gateway.DeleteDocument(ctx, session, rec.Title); err != nil {
		return fmt.Errorf("delete %s: %w", rec.Title, err)
	}

	if err := s.registry.Remove(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrStateConflict) {
			return err
		}
		// Already gone locally; the server-side delete stands.
		return nil
	}
	s.persist(ctx)
	return nil
}

// Rehydrate loads the persisted document list into the registry.
//
// Records persisted mid-transfer cannot resume: an Uploading record
// comes back as Error (the upload died with the process), a Processing
// record keeps its status and is re-polled or re-synced by the caller.
func (s *DocumentService) Rehydrate(ctx context.Context) error {
	if s.state == nil {
		return nil
	}
	recs, err := s.state.LoadDocuments(ctx)
	if err != nil {
		return fmt.Errorf("load persisted documents: %w", err)
	}
	for i := range recs {
		if recs[i].Status == domain.StatusUploading {
			recs[i].Status = domain.StatusError
			recs[i].Progress = 0
		}
	}
	return s.registry.ReplaceAll(ctx, recs)
}

// Sync reconciles the registry with the server's document list. Server
// state wins; local records still pending or in Error are appended so
// they remain visible and dismissible.
func (s *DocumentService) Sync(ctx context.Context, session domain.UserSession) error {
	serverDocs, err := s.gateway.ListDocuments(ctx, session)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	local, err := s.registry.List(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(serverDocs))
	for _, d := range serverDocs {
		seen[d.ID] = true
	}

	merged := serverDocs
	for _, rec := range local {
		if seen[rec.ID] {
			continue
		}
		if rec.Pending() || rec.Status == domain.StatusError {
			merged = append(merged, rec)
		}
	}

	if err := s.registry.ReplaceAll(ctx, merged); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// persist flushes the registry snapshot to durable storage.
func (s *DocumentService) persist(ctx context.Context) {
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
