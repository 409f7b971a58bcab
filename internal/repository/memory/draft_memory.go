package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"draftgen/internal/model"
	"draftgen/internal/repository"
)

// DraftMemory keeps the draft history in process memory. It follows the same
// ordering and not-found contract as the PostgreSQL repository.
type DraftMemory struct {
	mu     sync.RWMutex
	drafts map[string]model.Draft
}

// NewDraftMemory returns an empty in-memory repository.
func NewDraftMemory() *DraftMemory {
	return &DraftMemory{drafts: make(map[string]model.Draft)}
}

var _ repository.DraftRepository = (*DraftMemory)(nil)

func (r *DraftMemory) Create(ctx context.Context, d *model.Draft) (*model.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.drafts[d.ID]; exists {
		return nil, fmt.Errorf("draft %s already exists", d.ID)
	}
	r.drafts[d.ID] = *d
	out := *d
	return &out, nil
}

func (r *DraftMemory) FindByID(ctx context.Context, id string) (*model.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (r *DraftMemory) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Draft], error) {
	r.mu.RLock()
	items := make([]model.Draft, 0, len(r.drafts))
	for _, d := range r.drafts {
		items = append(items, d)
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].ViewedAt.Equal(items[j].ViewedAt) {
			return items[i].ViewedAt.After(items[j].ViewedAt)
		}
		return items[i].ID > items[j].ID
	})

	total := len(items)
	start := min(max(pq.Offset, 0), total)
	end := total
	if pq.Limit > 0 {
		end = min(start+pq.Limit, total)
	}
	return &repository.PageResult[model.Draft]{
		Items: items[start:end],
		Total: total,
	}, nil
}

func (r *DraftMemory) Touch(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	if !ok {
		return sql.ErrNoRows
	}
	d.ViewedAt = at
	r.drafts[id] = d
	return nil
}

func (r *DraftMemory) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.drafts, id)
	r.mu.Unlock()
	return nil
}
