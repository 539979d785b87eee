package editor

import (
	"context"

	"stockfolio/internal/logger"
	"stockfolio/internal/models"

	"go.uber.org/zap"
)

// BeginDrag «поднимает» элемент. Новый жест можно начать, даже пока
// предыдущий порядок ещё сохраняется.
func (e *Editor) BeginDrag(item ItemRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.exists(item) {
		return ErrNotFound
	}
	drag := Dragging{Item: item, Kind: item.Kind}
	if item.Kind == KindSubmenu {
		sub := e.tabs[indexOfTab(e.tabs, item.TabID)].Submenus[item.Index].Clone()
		drag.Submenu = &sub
	}
	e.state = drag
	return nil
}

// CancelDrag завершает жест без изменений.
func (e *Editor) CancelDrag() {
	e.mu.Lock()
	if _, ok := e.state.(Dragging); ok {
		e.state = Idle{}
	}
	e.mu.Unlock()
}

// Drop опускает поднятый элемент на target и сохраняет порядок.
// Если источник стоял раньше цели, вставка после цели, иначе перед ней.
// Подменю, опущенное на вкладку, добавляется в конец её списка.
func (e *Editor) Drop(ctx context.Context, target ItemRef) error {
	log := logger.WithCtx(ctx)

	e.mu.Lock()
	drag, ok := e.state.(Dragging)
	if !ok {
		e.mu.Unlock()
		return ErrNotDragging
	}

	moved, err := e.move(drag, target)
	if err != nil {
		e.state = Idle{}
		e.mu.Unlock()
		log.Warn("editor: перемещение отклонено",
			zap.Stringer("item", drag.Item), zap.Stringer("target", target), zap.Error(err))
		return err
	}
	if !moved {
		e.state = Idle{}
		e.mu.Unlock()
		return nil
	}
	renumber(e.tabs)
	e.state = PersistPending{}
	snapshot := cloneTabs(e.tabs)
	e.mu.Unlock()

	log.Info("editor: элемент перемещён", zap.Stringer("item", drag.Item), zap.Stringer("target", target))
	e.view.Render(snapshot)
	return e.PersistOrder(ctx)
}

// Reorder — BeginDrag и Drop одним вызовом.
func (e *Editor) Reorder(ctx context.Context, item, target ItemRef) error {
	if err := e.BeginDrag(item); err != nil {
		return err
	}
	return e.Drop(ctx, target)
}

// move меняет модель; false — элемент опущен сам на себя.
func (e *Editor) move(drag Dragging, target ItemRef) (bool, error) {
	// модель могла смениться между BeginDrag и Drop
	item, ok := e.resolve(drag)
	if !ok || !e.exists(target) {
		return false, ErrNotFound
	}
	switch {
	case item.Kind == KindTab && target.Kind == KindTab:
		return e.moveTab(item.TabID, target.TabID), nil
	case item.Kind == KindSubmenu && target.Kind == KindSubmenu:
		return e.moveSubmenu(item, target), nil
	case item.Kind == KindSubmenu && target.Kind == KindTab:
		e.appendSubmenu(item, target.TabID)
		return true, nil
	}
	return false, ErrScopeMismatch
}

func (e *Editor) moveTab(srcID, dstID int) bool {
	src := indexOfTab(e.tabs, srcID)
	dst := indexOfTab(e.tabs, dstID)
	if src == dst {
		return false
	}
	after := src < dst

	tab := e.tabs[src]
	e.tabs = append(e.tabs[:src], e.tabs[src+1:]...)

	dst = indexOfTab(e.tabs, dstID)
	if after {
		dst++
	}
	e.tabs = insertTab(e.tabs, dst, tab)
	return true
}

func (e *Editor) moveSubmenu(item, target ItemRef) bool {
	if item == target {
		return false
	}
	after := e.flatIndex(item) < e.flatIndex(target)

	srcTab := indexOfTab(e.tabs, item.TabID)
	sub := e.tabs[srcTab].Submenus[item.Index]
	e.tabs[srcTab].Submenus = removeSubmenu(e.tabs[srcTab].Submenus, item.Index)

	dstTab := indexOfTab(e.tabs, target.TabID)
	dst := target.Index
	if srcTab == dstTab && item.Index < target.Index {
		dst--
	}
	if after {
		dst++
	}
	sub.ParentID = target.TabID
	e.tabs[dstTab].Submenus = insertSubmenu(e.tabs[dstTab].Submenus, dst, sub)
	return true
}

func (e *Editor) appendSubmenu(item ItemRef, tabID int) {
	srcTab := indexOfTab(e.tabs, item.TabID)
	sub := e.tabs[srcTab].Submenus[item.Index]
	e.tabs[srcTab].Submenus = removeSubmenu(e.tabs[srcTab].Submenus, item.Index)

	dstTab := indexOfTab(e.tabs, tabID)
	sub.ParentID = tabID
	e.tabs[dstTab].Submenus = append(e.tabs[dstTab].Submenus, sub)
}

// flatIndex — позиция подменю в порядке документа (все списки подряд).
func (e *Editor) flatIndex(ref ItemRef) int {
	n := 0
	for _, t := range e.tabs {
		if t.ID == ref.TabID {
			return n + ref.Index
		}
		n += len(t.Submenus)
	}
	return -1
}

// resolve находит текущую позицию поднятого элемента. Подменю ищется по id,
// несохранённое — по содержимому, сначала на прежнем месте.
func (e *Editor) resolve(drag Dragging) (ItemRef, bool) {
	if drag.Kind == KindTab || drag.Submenu == nil {
		return drag.Item, e.exists(drag.Item)
	}
	lifted := *drag.Submenu

	if lifted.ID == nil && e.exists(drag.Item) {
		cur := e.tabs[indexOfTab(e.tabs, drag.Item.TabID)].Submenus[drag.Item.Index]
		if sameSubmenu(cur, lifted) {
			return drag.Item, true
		}
	}
	for _, t := range e.tabs {
		for j, s := range t.Submenus {
			if sameSubmenu(s, lifted) {
				return SubmenuRef(t.ID, j), true
			}
		}
	}
	return ItemRef{}, false
}

func sameSubmenu(a, b models.Submenu) bool {
	if a.ID != nil || b.ID != nil {
		return a.ID != nil && b.ID != nil && *a.ID == *b.ID
	}
	return a.Name == b.Name && a.URL == b.URL && a.LinkType == b.LinkType
}

func (e *Editor) exists(ref ItemRef) bool {
	i := indexOfTab(e.tabs, ref.TabID)
	if i < 0 {
		return false
	}
	switch ref.Kind {
	case KindTab:
		return true
	case KindSubmenu:
		return ref.Index >= 0 && ref.Index < len(e.tabs[i].Submenus)
	}
	return false
}

func removeSubmenu(subs []models.Submenu, i int) []models.Submenu {
	out := make([]models.Submenu, 0, len(subs)-1)
	out = append(out, subs[:i]...)
	return append(out, subs[i+1:]...)
}

func insertSubmenu(subs []models.Submenu, i int, s models.Submenu) []models.Submenu {
	out := make([]models.Submenu, 0, len(subs)+1)
	out = append(out, subs[:i]...)
	out = append(out, s)
	return append(out, subs[i:]...)
}
