package models

import "strings"

// LinkType определяет, куда ведёт пункт навигации.
type LinkType string

const (
	LinkView  LinkType = "view"  // внутреннее представление по имени
	LinkURL   LinkType = "url"   // внешний адрес
	LinkDummy LinkType = "dummy" // заглушка без перехода
)

// Valid — true для известных типов ссылок.
func (t LinkType) Valid() bool {
	switch t {
	case LinkView, LinkURL, LinkDummy:
		return true
	}
	return false
}

// Tab — пункт верхнего уровня навигации.
type Tab struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	URLName  string    `json:"url_name"`
	LinkType LinkType  `json:"link_type"`
	Order    int       `json:"order"`
	Submenus []Submenu `json:"submenus"`
}

// Submenu — вложенный пункт, принадлежит ровно одной вкладке.
// ID равен nil, пока подменю не сохранено на сервере.
type Submenu struct {
	ID       *int     `json:"id"`
	ParentID int      `json:"parent_id"`
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	LinkType LinkType `json:"link_type"`
	Order    int      `json:"order"`
}

// Clone — глубокая копия вкладки.
func (t Tab) Clone() Tab {
	out := t
	out.Submenus = make([]Submenu, len(t.Submenus))
	for i, s := range t.Submenus {
		out.Submenus[i] = s.Clone()
	}
	return out
}

func (s Submenu) Clone() Submenu {
	out := s
	if s.ID != nil {
		id := *s.ID
		out.ID = &id
	}
	return out
}

// TabForm — данные формы создания/редактирования вкладки.
// ID задан только при обновлении.
type TabForm struct {
	ID       *int          `json:"id,omitempty"`
	Name     string        `json:"name"`
	Icon     string        `json:"icon"`
	URLName  string        `json:"url_name"`
	LinkType LinkType      `json:"link_type"`
	Submenus []SubmenuForm `json:"submenus"`
}

type SubmenuForm struct {
	ID       *int     `json:"id,omitempty"`
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	LinkType LinkType `json:"link_type"`
}

// Normalize обрезает пробелы, подставляет тип ссылки по умолчанию и
// выбрасывает строки подменю без названия.
func (f TabForm) Normalize() TabForm {
	out := f
	out.Name = strings.TrimSpace(f.Name)
	out.Icon = strings.TrimSpace(f.Icon)
	out.URLName = strings.TrimSpace(f.URLName)
	if out.LinkType == "" {
		out.LinkType = LinkView
	}
	out.Submenus = nil
	for _, s := range f.Submenus {
		s.Name = strings.TrimSpace(s.Name)
		s.URL = strings.TrimSpace(s.URL)
		if s.Name == "" {
			continue
		}
		if s.LinkType == "" {
			s.LinkType = LinkURL
		}
		out.Submenus = append(out.Submenus, s)
	}
	return out
}

// Validate возвращает список незаполненных или неверных полей.
// Ожидает уже нормализованную форму.
func (f TabForm) Validate() []string {
	var bad []string
	if f.Name == "" {
		bad = append(bad, "name")
	}
	if f.Icon == "" {
		bad = append(bad, "icon")
	}
	if f.URLName == "" {
		bad = append(bad, "url_name")
	}
	if !f.LinkType.Valid() {
		bad = append(bad, "link_type")
	}
	for _, s := range f.Submenus {
		if !s.LinkType.Valid() {
			bad = append(bad, "submenus.link_type")
			break
		}
	}
	return bad
}

// FormFromTab заполняет форму из существующей вкладки (режим редактирования).
func FormFromTab(t Tab) TabForm {
	id := t.ID
	f := TabForm{
		ID:       &id,
		Name:     t.Name,
		Icon:     t.Icon,
		URLName:  t.URLName,
		LinkType: t.LinkType,
	}
	for _, s := range t.Submenus {
		s = s.Clone()
		f.Submenus = append(f.Submenus, SubmenuForm{
			ID:       s.ID,
			Name:     s.Name,
			URL:      s.URL,
			LinkType: s.LinkType,
		})
	}
	return f
}

// TabOrder — элемент тела запроса save_order.
type TabOrder struct {
	ID       int            `json:"id"`
	Order    int            `json:"order"`
	Submenus []SubmenuOrder `json:"submenus"`
}

// SubmenuOrder — позиция подменю; Text — отображаемое название.
type SubmenuOrder struct {
	ID       *int   `json:"id"`
	ParentID int    `json:"parent_id"`
	Order    int    `json:"order"`
	Text     string `json:"text"`
}
