// Package editor хранит дерево вкладок и подменю навигации, выполняет
// создание, редактирование, удаление и перестановку элементов и после
// каждого структурного изменения отправляет полный порядок на сервер.
//
// Модель — упорядоченные срезы; представление (View) лишь отображает её.
// Порядок для сервера всегда строится из модели.
package editor

import (
	"context"
	"sort"
	"sync"

	"stockfolio/internal/logger"
	"stockfolio/internal/models"

	"go.uber.org/zap"
)

// Backend — серверные эндпоинты навигации.
type Backend interface {
	GetTabs(ctx context.Context) ([]models.Tab, error)
	SaveTab(ctx context.Context, form models.TabForm) (models.Tab, error)
	DeleteTab(ctx context.Context, id int) error
	SaveOrder(ctx context.Context, order []models.TabOrder) error
}

// View получает актуальную копию дерева после каждого изменения модели.
type View interface {
	Render(tabs []models.Tab)
}

// Confirmer спрашивает пользователя перед удалением.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Alerter показывает блокирующее сообщение об ошибке ввода.
type Alerter interface {
	Alert(msg string)
}

type (
	ViewFunc    func(tabs []models.Tab)
	ConfirmFunc func(ctx context.Context, prompt string) bool
	AlertFunc   func(msg string)
)

func (f ViewFunc) Render(tabs []models.Tab)                          { f(tabs) }
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }
func (f AlertFunc) Alert(msg string)                                 { f(msg) }

type Option func(*Editor)

func WithView(v View) Option           { return func(e *Editor) { e.view = v } }
func WithConfirmer(c Confirmer) Option { return func(e *Editor) { e.confirm = c } }
func WithAlerter(a Alerter) Option     { return func(e *Editor) { e.alert = a } }

// Editor безопасен для конкурентного использования: модель защищена
// мьютексом, сетевые вызовы выполняются без блокировки.
type Editor struct {
	backend Backend
	view    View
	confirm Confirmer
	alert   Alerter

	mu     sync.Mutex
	tabs   []models.Tab
	state  State
	editID *int
}

func NewEditor(b Backend, opts ...Option) *Editor {
	e := &Editor{
		backend: b,
		view:    ViewFunc(func([]models.Tab) {}),
		confirm: ConfirmFunc(func(context.Context, string) bool { return false }),
		alert:   AlertFunc(func(string) {}),
		state:   Idle{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tabs возвращает глубокую копию модели.
func (e *Editor) Tabs() []models.Tab {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneTabs(e.tabs)
}

// State — текущее состояние жеста.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// PendingEditID — id вкладки в режиме редактирования.
func (e *Editor) PendingEditID() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editID == nil {
		return 0, false
	}
	return *e.editID, true
}

// LoadAll загружает дерево с сервера и заменяет им модель. Порядок
// сортируется, но значения order сервера не перенумеровываются.
// При ошибке модель остаётся прежней.
func (e *Editor) LoadAll(ctx context.Context) ([]models.Tab, error) {
	log := logger.WithCtx(ctx)

	tabs, err := e.backend.GetTabs(ctx)
	if err != nil {
		log.Error("editor: ошибка загрузки вкладок", zap.Error(err))
		return nil, err
	}

	sortTabs(tabs)

	e.mu.Lock()
	e.tabs = cloneTabs(tabs)
	snapshot := cloneTabs(e.tabs)
	e.mu.Unlock()

	log.Info("editor: вкладки загружены", zap.Int("tabs_count", len(tabs)))
	e.view.Render(snapshot)
	return cloneTabs(snapshot), nil
}

// EditTab переводит вкладку в режим редактирования и возвращает
// заполненную форму.
func (e *Editor) EditTab(id int) (models.TabForm, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := indexOfTab(e.tabs, id)
	if i < 0 {
		return models.TabForm{}, ErrNotFound
	}
	e.editID = &id
	return models.FormFromTab(e.tabs[i]), nil
}

// CancelEdit сбрасывает режим редактирования.
func (e *Editor) CancelEdit() {
	e.mu.Lock()
	e.editID = nil
	e.mu.Unlock()
}

// CreateOrUpdate проверяет форму и отправляет её на сервер. Обновление
// выполняется, если перед этим был вызван EditTab. Ответ сервера заменяет
// запись в модели; новая вкладка добавляется в конец.
func (e *Editor) CreateOrUpdate(ctx context.Context, form models.TabForm) (models.Tab, error) {
	log := logger.WithCtx(ctx)

	form = form.Normalize()
	if bad := form.Validate(); len(bad) > 0 {
		log.Warn("editor: форма не прошла проверку", zap.Strings("fields", bad))
		e.alert.Alert("Заполните обязательные поля: название, иконка и ссылка")
		return models.Tab{}, &ValidationError{Fields: bad}
	}

	e.mu.Lock()
	form.ID = nil
	if e.editID != nil {
		id := *e.editID
		form.ID = &id
	}
	e.mu.Unlock()

	saved, err := e.backend.SaveTab(ctx, form)
	if err != nil {
		log.Error("editor: ошибка сохранения вкладки", zap.Error(err), zap.Any("id", form.ID))
		return models.Tab{}, err
	}
	sortSubmenus(saved.Submenus)

	e.mu.Lock()
	replaced := false
	if form.ID != nil {
		if i := indexOfTab(e.tabs, *form.ID); i >= 0 {
			e.tabs = append(e.tabs[:i], e.tabs[i+1:]...)
			e.tabs = insertTab(e.tabs, i, saved.Clone())
			replaced = true
		}
	}
	if !replaced {
		// сервер мог вернуть уже существующий id: заменяем, не дублируем
		if i := indexOfTab(e.tabs, saved.ID); i >= 0 {
			e.tabs[i] = saved.Clone()
		} else {
			e.tabs = append(e.tabs, saved.Clone())
		}
	}
	e.editID = nil
	snapshot := cloneTabs(e.tabs)
	e.mu.Unlock()

	log.Info("editor: вкладка сохранена", zap.Int("id", saved.ID), zap.Bool("updated", replaced))
	e.view.Render(snapshot)
	return saved.Clone(), nil
}

// Delete удаляет вкладку после подтверждения пользователя и затем
// сохраняет порядок оставшихся.
func (e *Editor) Delete(ctx context.Context, id int) error {
	log := logger.WithCtx(ctx)

	e.mu.Lock()
	i := indexOfTab(e.tabs, id)
	var name string
	if i >= 0 {
		name = e.tabs[i].Name
	}
	e.mu.Unlock()
	if i < 0 {
		return ErrNotFound
	}

	if !e.confirm.Confirm(ctx, "Удалить вкладку «"+name+"»?") {
		log.Info("editor: удаление отменено", zap.Int("id", id))
		return ErrCancelled
	}

	if err := e.backend.DeleteTab(ctx, id); err != nil {
		log.Error("editor: ошибка удаления вкладки", zap.Error(err), zap.Int("id", id))
		return err
	}

	e.mu.Lock()
	if j := indexOfTab(e.tabs, id); j >= 0 {
		e.tabs = append(e.tabs[:j], e.tabs[j+1:]...)
	}
	if e.editID != nil && *e.editID == id {
		e.editID = nil
	}
	renumber(e.tabs)
	snapshot := cloneTabs(e.tabs)
	e.mu.Unlock()

	log.Info("editor: вкладка удалена", zap.Int("id", id))
	e.view.Render(snapshot)
	return e.PersistOrder(ctx)
}

// PersistOrder отправляет порядок всего дерева одним запросом.
// Последняя запись побеждает: версии не сверяются.
func (e *Editor) PersistOrder(ctx context.Context) error {
	log := logger.WithCtx(ctx)

	e.mu.Lock()
	payload := buildOrder(e.tabs)
	// начатый жест не сбрасывается
	if _, dragging := e.state.(Dragging); !dragging {
		e.state = PersistPending{}
	}
	e.mu.Unlock()

	err := e.backend.SaveOrder(ctx, payload)

	e.mu.Lock()
	// новый жест мог начаться, пока запрос был в полёте
	if _, ok := e.state.(PersistPending); ok {
		e.state = Idle{}
	}
	e.mu.Unlock()

	if err != nil {
		log.Error("editor: ошибка сохранения порядка", zap.Error(err))
		return err
	}
	log.Debug("editor: порядок сохранён", zap.Int("tabs_count", len(payload)))
	return nil
}

// OrderPayload — тело запроса save_order для текущей модели.
func (e *Editor) OrderPayload() []models.TabOrder {
	e.mu.Lock()
	defer e.mu.Unlock()
	return buildOrder(e.tabs)
}

// FindSubmenu ищет подменю по id.
func (e *Editor) FindSubmenu(id int) (ItemRef, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.tabs {
		for j, s := range t.Submenus {
			if s.ID != nil && *s.ID == id {
				return SubmenuRef(t.ID, j), true
			}
		}
	}
	return ItemRef{}, false
}

func buildOrder(tabs []models.Tab) []models.TabOrder {
	out := make([]models.TabOrder, 0, len(tabs))
	for _, t := range tabs {
		to := models.TabOrder{ID: t.ID, Order: t.Order, Submenus: make([]models.SubmenuOrder, 0, len(t.Submenus))}
		for _, s := range t.Submenus {
			s = s.Clone()
			to.Submenus = append(to.Submenus, models.SubmenuOrder{
				ID:       s.ID,
				ParentID: s.ParentID,
				Order:    s.Order,
				Text:     s.Name,
			})
		}
		out = append(out, to)
	}
	return out
}

func sortTabs(tabs []models.Tab) {
	sort.SliceStable(tabs, func(i, j int) bool {
		if tabs[i].Order != tabs[j].Order {
			return tabs[i].Order < tabs[j].Order
		}
		return tabs[i].ID < tabs[j].ID
	})
	for i := range tabs {
		sortSubmenus(tabs[i].Submenus)
	}
}

// sortSubmenus: по order, затем по id; несохранённые (id nil) в конце.
func sortSubmenus(subs []models.Submenu) {
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Order != subs[j].Order {
			return subs[i].Order < subs[j].Order
		}
		a, b := subs[i].ID, subs[j].ID
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a < *b
	})
}

func cloneTabs(tabs []models.Tab) []models.Tab {
	if tabs == nil {
		return nil
	}
	out := make([]models.Tab, len(tabs))
	for i, t := range tabs {
		out[i] = t.Clone()
	}
	return out
}

func indexOfTab(tabs []models.Tab, id int) int {
	for i, t := range tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func insertTab(tabs []models.Tab, i int, t models.Tab) []models.Tab {
	tabs = append(tabs, models.Tab{})
	copy(tabs[i+1:], tabs[i:])
	tabs[i] = t
	return tabs
}

// renumber приводит order к плотной последовательности 0..n-1 и
// выставляет parent_id по фактическому владельцу.
func renumber(tabs []models.Tab) {
	for i := range tabs {
		tabs[i].Order = i
		for j := range tabs[i].Submenus {
			tabs[i].Submenus[j].Order = j
			tabs[i].Submenus[j].ParentID = tabs[i].ID
		}
	}
}
