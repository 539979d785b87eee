package editor

import (
	"fmt"

	"stockfolio/internal/models"
)

// Kind различает уровень элемента навигации.
type Kind int

const (
	KindTab Kind = iota
	KindSubmenu
)

func (k Kind) String() string {
	switch k {
	case KindTab:
		return "tab"
	case KindSubmenu:
		return "submenu"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ItemRef указывает на элемент модели. Для вкладки значим только TabID,
// для подменю — вкладка-владелец и позиция в её списке.
type ItemRef struct {
	Kind  Kind
	TabID int
	Index int
}

func TabRef(id int) ItemRef { return ItemRef{Kind: KindTab, TabID: id} }

func SubmenuRef(tabID, index int) ItemRef {
	return ItemRef{Kind: KindSubmenu, TabID: tabID, Index: index}
}

func (r ItemRef) String() string {
	if r.Kind == KindTab {
		return fmt.Sprintf("tab#%d", r.TabID)
	}
	return fmt.Sprintf("submenu(tab#%d)[%d]", r.TabID, r.Index)
}

// State — состояние жеста перетаскивания: Idle, Dragging или PersistPending.
type State interface {
	isState()
	String() string
}

type Idle struct{}

// Dragging — элемент «поднят», ждём Drop. Для подменю Submenu хранит
// копию поднятого пункта: к моменту Drop его позиция могла измениться.
type Dragging struct {
	Item    ItemRef
	Kind    Kind
	Submenu *models.Submenu
}

// PersistPending — порядок отправляется на сервер.
type PersistPending struct{}

func (Idle) isState()           {}
func (Dragging) isState()       {}
func (PersistPending) isState() {}

func (Idle) String() string           { return "idle" }
func (d Dragging) String() string     { return "dragging " + d.Item.String() }
func (PersistPending) String() string { return "persist-pending" }
