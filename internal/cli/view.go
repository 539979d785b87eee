package cli

import (
	"fmt"
	"io"
	"sync"

	"stockfolio/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableView запоминает последнее состояние дерева и печатает его таблицей.
type TableView struct {
	mu   sync.Mutex
	tabs []models.Tab
}

func (v *TableView) Render(tabs []models.Tab) {
	v.mu.Lock()
	v.tabs = tabs
	v.mu.Unlock()
}

func (v *TableView) Print(w io.Writer) {
	v.mu.Lock()
	tabs := v.tabs
	v.mu.Unlock()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "ID", "Name", "Icon", "Link", "Type"})

	for _, tab := range tabs {
		t.AppendRow(table.Row{tab.Order, tab.ID, tab.Name, tab.Icon, tab.URLName, tab.LinkType})
		for _, s := range tab.Submenus {
			id := "new"
			if s.ID != nil {
				id = fmt.Sprint(*s.ID)
			}
			t.AppendRow(table.Row{fmt.Sprintf("%d.%d", tab.Order, s.Order), id, "  └ " + s.Name, "", s.URL, s.LinkType})
		}
	}
	if len(tabs) == 0 {
		t.AppendFooter(table.Row{"", "", "no tabs"})
	}
	t.Render()
}
