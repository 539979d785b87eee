package repository

import (
	"context"
	"sort"
	"sync"

	"stockfolio/internal/models"
)

// MemoryTabRepository — хранилище в памяти для локального запуска без БД
// и для тестов. Семантика совпадает с TabRepository.
type MemoryTabRepository struct {
	mu      sync.Mutex
	tabs    map[int]models.Tab
	lastTab int
	lastSub int
}

func NewMemoryTabRepository() *MemoryTabRepository {
	return &MemoryTabRepository{tabs: make(map[int]models.Tab)}
}

func (r *MemoryTabRepository) ListTabs(_ context.Context) ([]models.Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Tab, 0, len(r.tabs))
	for _, t := range r.tabs {
		out = append(out, r.withSubmenus(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryTabRepository) GetTab(_ context.Context, id int) (models.Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tabs[id]
	if !ok {
		return models.Tab{}, ErrNotFound
	}
	return r.withSubmenus(t), nil
}

func (r *MemoryTabRepository) CreateTab(_ context.Context, t *models.Tab) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastTab++
	t.ID = r.lastTab
	t.Order = 0
	for _, other := range r.tabs {
		if other.Order >= t.Order {
			t.Order = other.Order + 1
		}
	}
	r.replaceSubmenus(t)
	r.tabs[t.ID] = t.Clone()
	return nil
}

func (r *MemoryTabRepository) UpdateTab(_ context.Context, t *models.Tab) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.tabs[t.ID]
	if !ok {
		return ErrNotFound
	}
	t.Order = old.Order
	r.replaceSubmenus(t)
	r.tabs[t.ID] = t.Clone()
	return nil
}

func (r *MemoryTabRepository) DeleteTab(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tabs[id]; !ok {
		return ErrNotFound
	}
	delete(r.tabs, id)
	return nil
}

func (r *MemoryTabRepository) SaveOrder(_ context.Context, order []models.TabOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, to := range order {
		if t, ok := r.tabs[to.ID]; ok {
			t.Order = to.Order
			r.tabs[to.ID] = t
		}
		for _, so := range to.Submenus {
			if so.ID == nil {
				continue
			}
			if _, ok := r.tabs[so.ParentID]; !ok {
				continue
			}
			r.moveSubmenu(*so.ID, so.ParentID, so.Order)
		}
	}
	return nil
}

// replaceSubmenus: подменю с известным id забираются из любой вкладки,
// новые получают id.
func (r *MemoryTabRepository) replaceSubmenus(t *models.Tab) {
	subs := make([]models.Submenu, 0, len(t.Submenus))
	for i, s := range t.Submenus {
		s = s.Clone()
		if s.ID == nil || !r.detachSubmenu(*s.ID, t.ID) {
			r.lastSub++
			id := r.lastSub
			s.ID = &id
		}
		s.ParentID = t.ID
		s.Order = i
		subs = append(subs, s)
	}
	t.Submenus = subs
}

// detachSubmenu убирает подменю из другой вкладки; true — если оно существовало.
func (r *MemoryTabRepository) detachSubmenu(id, ownerID int) bool {
	for tid, t := range r.tabs {
		for i, s := range t.Submenus {
			if s.ID != nil && *s.ID == id {
				if tid != ownerID {
					t.Submenus = append(t.Submenus[:i:i], t.Submenus[i+1:]...)
					r.tabs[tid] = t
				}
				return true
			}
		}
	}
	return false
}

func (r *MemoryTabRepository) moveSubmenu(id, parentID, order int) {
	for tid, t := range r.tabs {
		for i, s := range t.Submenus {
			if s.ID == nil || *s.ID != id {
				continue
			}
			s.ParentID = parentID
			s.Order = order
			if tid == parentID {
				t.Submenus[i] = s
				r.tabs[tid] = t
				return
			}
			t.Submenus = append(t.Submenus[:i:i], t.Submenus[i+1:]...)
			r.tabs[tid] = t
			dst := r.tabs[parentID]
			dst.Submenus = append(dst.Submenus, s)
			r.tabs[parentID] = dst
			return
		}
	}
}

func (r *MemoryTabRepository) withSubmenus(t models.Tab) models.Tab {
	t = t.Clone()
	sort.SliceStable(t.Submenus, func(i, j int) bool {
		if t.Submenus[i].Order != t.Submenus[j].Order {
			return t.Submenus[i].Order < t.Submenus[j].Order
		}
		return *t.Submenus[i].ID < *t.Submenus[j].ID
	})
	return t
}
