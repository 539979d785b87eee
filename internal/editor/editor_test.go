package editor

import (
	"context"
	"errors"
	"testing"

	"stockfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Мок-бэкенд: хранит вызовы и отдаёт заготовленные ответы
type mockBackend struct {
	tabs   []models.Tab
	nextID int

	saveErr   error
	deleteErr error
	orderErr  error

	saved   []models.TabForm
	deleted []int
	orders  [][]models.TabOrder
	calls   int
}

func (m *mockBackend) GetTabs(_ context.Context) ([]models.Tab, error) {
	m.calls++
	out := make([]models.Tab, len(m.tabs))
	for i, t := range m.tabs {
		out[i] = t.Clone()
	}
	return out, nil
}

func (m *mockBackend) SaveTab(_ context.Context, f models.TabForm) (models.Tab, error) {
	m.calls++
	m.saved = append(m.saved, f)
	if m.saveErr != nil {
		return models.Tab{}, m.saveErr
	}
	id := m.nextID
	if f.ID != nil {
		id = *f.ID
	} else {
		m.nextID++
	}
	t := models.Tab{ID: id, Name: f.Name, Icon: f.Icon, URLName: f.URLName, LinkType: f.LinkType}
	for i, s := range f.Submenus {
		t.Submenus = append(t.Submenus, models.Submenu{ID: s.ID, ParentID: id, Name: s.Name, URL: s.URL, LinkType: s.LinkType, Order: i})
	}
	return t, nil
}

func (m *mockBackend) DeleteTab(_ context.Context, id int) error {
	m.calls++
	m.deleted = append(m.deleted, id)
	return m.deleteErr
}

func (m *mockBackend) SaveOrder(_ context.Context, order []models.TabOrder) error {
	m.calls++
	m.orders = append(m.orders, order)
	return m.orderErr
}

func intp(v int) *int { return &v }

// seedTabs: вкладки 1..n, у вкладки 1 подменю 101,102, у вкладки 2 — 201
func seedTabs(n int) []models.Tab {
	tabs := make([]models.Tab, 0, n)
	for i := 1; i <= n; i++ {
		tabs = append(tabs, models.Tab{ID: i, Name: "tab", Icon: "bi", URLName: "v", LinkType: models.LinkView, Order: i - 1})
	}
	if n >= 1 {
		tabs[0].Submenus = []models.Submenu{
			{ID: intp(101), ParentID: 1, Name: "s101", Order: 0},
			{ID: intp(102), ParentID: 1, Name: "s102", Order: 1},
		}
	}
	if n >= 2 {
		tabs[1].Submenus = []models.Submenu{{ID: intp(201), ParentID: 2, Name: "s201", Order: 0}}
	}
	return tabs
}

func loaded(t *testing.T, b Backend, opts ...Option) *Editor {
	t.Helper()
	e := NewEditor(b, opts...)
	_, err := e.LoadAll(context.Background())
	require.NoError(t, err)
	return e
}

func tabIDs(tabs []models.Tab) []int {
	ids := make([]int, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}
	return ids
}

func TestLoadAll_SortsAndRenders(t *testing.T) {
	b := &mockBackend{tabs: []models.Tab{
		{ID: 5, Order: 1},
		{ID: 3, Order: 0, Submenus: []models.Submenu{{ID: intp(2), Order: 1}, {ID: intp(1), Order: 0}}},
	}}
	var rendered []models.Tab
	e := loaded(t, b, WithView(ViewFunc(func(tabs []models.Tab) { rendered = tabs })))

	assert.Equal(t, []int{3, 5}, tabIDs(e.Tabs()))
	assert.Equal(t, 1, *e.Tabs()[0].Submenus[0].ID)
	assert.Equal(t, []int{3, 5}, tabIDs(rendered))
}

func TestLoadAll_ErrorKeepsModel(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(2)}
	e := loaded(t, b)

	e.backend = errBackend{b}
	_, err := e.LoadAll(context.Background())
	assert.Error(t, err)
	assert.Len(t, e.Tabs(), 2)
}

func TestLoadAll_KeepsServerOrders(t *testing.T) {
	b := &mockBackend{tabs: []models.Tab{
		{ID: 2, Name: "b", Order: 10},
		{ID: 1, Name: "a", Order: 3, Submenus: []models.Submenu{
			{ID: intp(12), ParentID: 1, Name: "a2", Order: 9},
			{ID: intp(11), ParentID: 1, Name: "a1", Order: 5},
		}},
	}}
	e := loaded(t, b)

	want := []models.TabOrder{
		{ID: 1, Order: 3, Submenus: []models.SubmenuOrder{
			{ID: intp(11), ParentID: 1, Order: 5, Text: "a1"},
			{ID: intp(12), ParentID: 1, Order: 9, Text: "a2"},
		}},
		{ID: 2, Order: 10, Submenus: []models.SubmenuOrder{}},
	}
	assert.Equal(t, want, e.OrderPayload())

	require.NoError(t, e.PersistOrder(context.Background()))
	require.Len(t, b.orders, 1)
	assert.Equal(t, want, b.orders[0])
}

func TestLoadAll_SubmenuTiesByID(t *testing.T) {
	b := &mockBackend{tabs: []models.Tab{{ID: 1, Submenus: []models.Submenu{
		{ID: intp(9), Name: "nine"},
		{Name: "unsaved"},
		{ID: intp(4), Name: "four"},
	}}}}
	e := loaded(t, b)

	subs := e.Tabs()[0].Submenus
	assert.Equal(t, []string{"four", "nine", "unsaved"}, []string{subs[0].Name, subs[1].Name, subs[2].Name})
}

type errBackend struct{ *mockBackend }

func (errBackend) GetTabs(context.Context) ([]models.Tab, error) {
	return nil, errors.New("network down")
}

func TestPersistOrder_RoundTrip(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(3)}
	e := loaded(t, b)

	require.NoError(t, e.PersistOrder(context.Background()))
	require.Len(t, b.orders, 1)

	got := b.orders[0]
	require.Len(t, got, 3)
	for i, tab := range b.tabs {
		assert.Equal(t, tab.ID, got[i].ID)
		assert.Equal(t, tab.Order, got[i].Order)
		require.Len(t, got[i].Submenus, len(tab.Submenus))
		for j, s := range tab.Submenus {
			assert.Equal(t, *s.ID, *got[i].Submenus[j].ID)
			assert.Equal(t, s.ParentID, got[i].Submenus[j].ParentID)
			assert.Equal(t, s.Order, got[i].Submenus[j].Order)
			assert.Equal(t, s.Name, got[i].Submenus[j].Text)
		}
	}
	assert.IsType(t, Idle{}, e.State())
}

func TestCreateOrUpdate_EmptyNameNoRequest(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(1)}
	var alerts []string
	e := loaded(t, b, WithAlerter(AlertFunc(func(msg string) { alerts = append(alerts, msg) })))
	calls := b.calls

	_, err := e.CreateOrUpdate(context.Background(), models.TabForm{Name: "  ", Icon: "bi", URLName: "x"})

	assert.ErrorIs(t, err, ErrValidation)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"name"}, ve.Fields)
	assert.Len(t, alerts, 1)
	assert.Equal(t, calls, b.calls, "сетевых запросов быть не должно")
}

func TestCreateOrUpdate_CreateAppends(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(2), nextID: 10}
	e := loaded(t, b)

	tab, err := e.CreateOrUpdate(context.Background(), models.TabForm{
		Name: "Дивиденды", Icon: "bi-cash", URLName: "dividends",
		Submenus: []models.SubmenuForm{{Name: "Календарь", URL: "/calendar"}, {Name: ""}},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, tab.ID)
	assert.Nil(t, b.saved[0].ID)
	assert.Len(t, b.saved[0].Submenus, 1)
	assert.Equal(t, []int{1, 2, 10}, tabIDs(e.Tabs()))
}

func TestEditThenUpdate_ReusesID(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(3)}
	var renders [][]int
	e := loaded(t, b, WithView(ViewFunc(func(tabs []models.Tab) { renders = append(renders, tabIDs(tabs)) })))

	form, err := e.EditTab(2)
	require.NoError(t, err)
	pending, ok := e.PendingEditID()
	require.True(t, ok)
	assert.Equal(t, 2, pending)

	form.Name = "Переименована"
	form.ID = nil // id берётся из режима редактирования, а не из формы
	tab, err := e.CreateOrUpdate(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, 2, tab.ID)
	require.NotNil(t, b.saved[0].ID)
	assert.Equal(t, 2, *b.saved[0].ID)

	tabs := e.Tabs()
	assert.Equal(t, []int{1, 2, 3}, tabIDs(tabs), "дубликат не создаётся")
	assert.Equal(t, "Переименована", tabs[1].Name)
	assert.Equal(t, []int{1, 2, 3}, renders[len(renders)-1])

	_, ok = e.PendingEditID()
	assert.False(t, ok)
}

func TestCreateOrUpdate_ServerErrorLeavesModel(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(2), saveErr: errors.New("500")}
	e := loaded(t, b)

	_, err := e.CreateOrUpdate(context.Background(), models.TabForm{Name: "a", Icon: "b", URLName: "c"})
	assert.Error(t, err)
	assert.Equal(t, []int{1, 2}, tabIDs(e.Tabs()))
}

func TestDelete_NotConfirmed(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(3)}
	e := loaded(t, b, WithConfirmer(ConfirmFunc(func(context.Context, string) bool { return false })))

	err := e.Delete(context.Background(), 2)

	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, b.deleted)
	assert.Empty(t, b.orders)
	assert.Equal(t, []int{1, 2, 3}, tabIDs(e.Tabs()))
}

func TestDelete_ConfirmedPersistsOnce(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(3)}
	e := loaded(t, b, WithConfirmer(ConfirmFunc(func(context.Context, string) bool { return true })))

	require.NoError(t, e.Delete(context.Background(), 2))

	assert.Equal(t, []int{2}, b.deleted)
	assert.Equal(t, []int{1, 3}, tabIDs(e.Tabs()))
	require.Len(t, b.orders, 1)
	assert.Equal(t, 1, b.orders[0][1].Order)
}

func TestDelete_ServerErrorKeepsEntry(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(3), deleteErr: errors.New("boom")}
	e := loaded(t, b, WithConfirmer(ConfirmFunc(func(context.Context, string) bool { return true })))

	assert.Error(t, e.Delete(context.Background(), 2))
	assert.Equal(t, []int{1, 2, 3}, tabIDs(e.Tabs()))
	assert.Empty(t, b.orders)
}

func TestDelete_Unknown(t *testing.T) {
	e := loaded(t, &mockBackend{tabs: seedTabs(1)})
	assert.ErrorIs(t, e.Delete(context.Background(), 42), ErrNotFound)
}

func TestDelete_DuringDragKeepsGesture(t *testing.T) {
	b := &mockBackend{tabs: seedTabs(3)}
	e := loaded(t, b, WithConfirmer(ConfirmFunc(func(context.Context, string) bool { return true })))

	require.NoError(t, e.BeginDrag(TabRef(1)))
	require.NoError(t, e.Delete(context.Background(), 3))

	_, dragging := e.State().(Dragging)
	require.True(t, dragging, "удаление не прерывает перетаскивание")

	require.NoError(t, e.Drop(context.Background(), TabRef(2)))
	assert.Equal(t, []int{2, 1}, tabIDs(e.Tabs()))
	assert.Len(t, b.orders, 2)
	assert.IsType(t, Idle{}, e.State())
}
