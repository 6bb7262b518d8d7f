package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/example/sevahub/internal/models"
	"github.com/example/sevahub/internal/storage"
	"github.com/example/sevahub/internal/store"
)

// SyncService mirrors the application state after every change: a write to
// the snapshot repository and a fire-and-forget push to the export sink.
// Failures on either path are logged and swallowed; they never reach the
// user, and nothing is retried.
type SyncService struct {
	store   *store.Store
	repo    storage.Repository
	syncURL string
}

// NewSyncService creates a SyncService. repo may be nil (persistence
// disabled) and syncURL may be empty (no export sink configured).
func NewSyncService(st *store.Store, repo storage.Repository, syncURL string) *SyncService {
	return &SyncService{store: st, repo: repo, syncURL: syncURL}
}

// Publish snapshots the current state, persists it and pushes it to the
// export sink.
func (s *SyncService) Publish() {
	snap := s.store.Snapshot()

	if s.repo != nil {
		if err := s.repo.Save(snap); err != nil {
			log.Printf("[Sync] snapshot save failed: %v", err)
		}
	}

	if s.syncURL == "" {
		return
	}
	go s.push(snap)
}

func (s *SyncService) push(snap models.Snapshot) {
	body, err := json.Marshal(snap)
	if err != nil {
		log.Printf("[Sync] marshal failed: %v", err)
		return
	}

	resp, err := http.Post(s.syncURL+"/api/sync-data", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Sync] push failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Sync] export sink returned status %d", resp.StatusCode)
		return
	}
	log.Printf("[Sync] snapshot pushed to export sink")
}
