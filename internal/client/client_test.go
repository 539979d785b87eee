package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stockfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Endpoints(t *testing.T) {
	var (
		gotPaths   []string
		gotHeaders []string
		gotOrder   []models.TabOrder
		gotForm    models.TabForm
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		gotHeaders = append(gotHeaders, r.Header.Get(CSRFHeader))

		switch r.URL.Path {
		case "/api/get_tabs/":
			_ = json.NewEncoder(w).Encode([]models.Tab{{ID: 1, Name: "Обзор", LinkType: models.LinkView}})
		case "/api/save_tab/":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotForm))
			c, err := r.Cookie(CSRFCookie)
			require.NoError(t, err)
			assert.Equal(t, "tok", c.Value)
			_ = json.NewEncoder(w).Encode(models.Tab{ID: 9, Name: gotForm.Name})
		case "/api/delete_tab/9/":
			w.WriteHeader(http.StatusNoContent)
		case "/api/save_order/":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotOrder))
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok", 0)
	ctx := context.Background()

	tabs, err := c.GetTabs(ctx)
	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.Equal(t, "Обзор", tabs[0].Name)

	tab, err := c.SaveTab(ctx, models.TabForm{Name: "Сделки", Icon: "bi", URLName: "trades", LinkType: models.LinkView})
	require.NoError(t, err)
	assert.Equal(t, 9, tab.ID)
	assert.Nil(t, gotForm.ID)

	require.NoError(t, c.DeleteTab(ctx, 9))

	id := 4
	require.NoError(t, c.SaveOrder(ctx, []models.TabOrder{{ID: 1, Order: 0, Submenus: []models.SubmenuOrder{{ID: &id, ParentID: 1, Text: "s"}}}}))
	require.Len(t, gotOrder, 1)
	assert.Equal(t, 4, *gotOrder[0].Submenus[0].ID)

	assert.Equal(t, []string{
		"GET /api/get_tabs/",
		"POST /api/save_tab/",
		"POST /api/delete_tab/9/",
		"POST /api/save_order/",
	}, gotPaths)
	assert.Equal(t, []string{"", "tok", "tok", "tok"}, gotHeaders, "CSRF только на изменяющих запросах")
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"tab not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	err := c.DeleteTab(context.Background(), 1)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Contains(t, se.Body, "tab not found")
}

func TestParseCSRFToken(t *testing.T) {
	page := `<html><body><form method="post">
<input type="text" name="q" value="x">
<input type="hidden" name="csrfmiddlewaretoken" value="abc123"/>
</form></body></html>`

	tok, err := ParseCSRFToken(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	_, err = ParseCSRFToken(strings.NewReader("<html><body>no form</body></html>"))
	assert.ErrorIs(t, err, ErrNoCSRFToken)
}

func TestFetchCSRFToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<form><input type="hidden" name="csrfmiddlewaretoken" value="from-page"></form>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	tok, err := c.FetchCSRFToken(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "from-page", tok)
	assert.Equal(t, "from-page", c.CSRFToken)
}
