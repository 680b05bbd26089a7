package zonemeta

import (
	"sync"

	"github.com/agentstation/zonemeta/pkg/catalog"
	"github.com/agentstation/zonemeta/pkg/forms"
)

// Hook function types for sync events
type (
	// ColumnGeneratedHook is called after the generator filled a column
	ColumnGeneratedHook func(assetID string, before, after forms.MergedColumn)

	// RevisionPublishedHook is called after a revision was created
	RevisionPublishedHook func(handle catalog.RevisionHandle)
)

// hooks manages event callbacks. Hooks may run concurrently under SyncAll.
type hooks struct {
	mu                  sync.RWMutex
	onColumnGenerated   []ColumnGeneratedHook
	onRevisionPublished []RevisionPublishedHook
}

func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) addColumnGenerated(fn ColumnGeneratedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onColumnGenerated = append(h.onColumnGenerated, fn)
}

func (h *hooks) addRevisionPublished(fn RevisionPublishedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRevisionPublished = append(h.onRevisionPublished, fn)
}

func (h *hooks) columnGenerated(assetID string, before, after forms.MergedColumn) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onColumnGenerated {
		hook(assetID, before.Clone(), after.Clone())
	}
}

func (h *hooks) revisionPublished(handle catalog.RevisionHandle) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onRevisionPublished {
		hook(handle)
	}
}
