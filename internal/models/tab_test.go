package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabFormNormalize(t *testing.T) {
	f := TabForm{
		Name:    "  Портфель ",
		Icon:    "bi-wallet",
		URLName: "portfolio",
		Submenus: []SubmenuForm{
			{Name: "Сделки", URL: "/trades"},
			{Name: "   "},
		},
	}

	n := f.Normalize()
	assert.Equal(t, "Портфель", n.Name)
	assert.Equal(t, LinkView, n.LinkType)
	assert.Len(t, n.Submenus, 1)
	assert.Equal(t, LinkURL, n.Submenus[0].LinkType)
	assert.Empty(t, n.Validate())
}

func TestTabFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form TabForm
		want []string
	}{
		{"пустая форма", TabForm{LinkType: LinkView}, []string{"name", "icon", "url_name"}},
		{"нет иконки", TabForm{Name: "a", URLName: "b", LinkType: LinkURL}, []string{"icon"}},
		{"плохой тип", TabForm{Name: "a", Icon: "i", URLName: "b", LinkType: "ftp"}, []string{"link_type"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.form.Validate())
		})
	}
}

func TestFormFromTab_CopiesSubmenuIDs(t *testing.T) {
	id := 7
	tab := Tab{ID: 3, Name: "a", Submenus: []Submenu{{ID: &id, ParentID: 3, Name: "s"}}}

	f := FormFromTab(tab)
	*f.Submenus[0].ID = 99

	assert.Equal(t, 3, *f.ID)
	assert.Equal(t, 7, *tab.Submenus[0].ID, "форма не должна разделять память с моделью")
}
