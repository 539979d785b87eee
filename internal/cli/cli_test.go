package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"stockfolio/internal/app"
	"stockfolio/internal/config"
	"stockfolio/internal/models"
	"stockfolio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	srv  *httptest.Server
	repo *repository.MemoryTabRepository
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	repo := repository.NewMemoryTabRepository()
	srv := httptest.NewServer(app.NewRouter(repo, ""))
	t.Cleanup(srv.Close)
	return &harness{srv: srv, repo: repo}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand(&config.Config{ServerURL: h.srv.URL})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (h *harness) names(t *testing.T) []string {
	t.Helper()
	tabs, err := h.repo.ListTabs(context.Background())
	require.NoError(t, err)
	var out []string
	for _, tab := range tabs {
		out = append(out, tab.Name)
	}
	return out
}

func TestCLI_AddListMove(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "", "add", "--name", "Overview", "--icon", "bi-house", "--url", "overview", "-q")
	require.NoError(t, err)
	_, stderr, err := h.run(t, "", "add", "--name", "Dividends", "--icon", "bi-cash", "--url", "dividends",
		"--submenu", "Calendar=/dividends/calendar", "-q")
	require.NoError(t, err)
	assert.Contains(t, stderr, "tab 2 created")

	_, _, err = h.run(t, "", "move-tab", "2", "1", "-q")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dividends", "Overview"}, h.names(t))

	out, _, err := h.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dividends")
	assert.Contains(t, out, "└ Calendar")
	assert.Less(t, strings.Index(out, "Dividends"), strings.Index(out, "Overview"))
}

func TestCLI_AddValidation(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "", "add", "--icon", "bi", "--url", "x")
	require.Error(t, err)
	assert.Contains(t, stderr, "Заполните обязательные поля")
	assert.Empty(t, h.names(t))
}

func TestCLI_DeleteAsksConfirmation(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "add", "--name", "Watchlist", "--icon", "bi-eye", "--url", "watchlist", "-q")
	require.NoError(t, err)

	_, stderr, err := h.run(t, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "cancelled")
	assert.Equal(t, []string{"Watchlist"}, h.names(t))

	_, _, err = h.run(t, "y\n", "delete", "1", "-q")
	require.NoError(t, err)
	assert.Empty(t, h.names(t))
}

func TestCLI_EditAndMoveSubmenu(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "add", "--name", "A", "--icon", "i", "--url", "a", "--submenu", "One=/1", "--submenu", "Two=/2", "-q")
	require.NoError(t, err)
	_, _, err = h.run(t, "", "add", "--name", "B", "--icon", "i", "--url", "b", "-q")
	require.NoError(t, err)

	_, _, err = h.run(t, "", "edit", "1", "--name", "A+", "--submenu", "Two=/2", "--submenu", "Three=/3", "-q")
	require.NoError(t, err)

	tab, err := h.repo.GetTab(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "A+", tab.Name)
	require.Len(t, tab.Submenus, 2)
	assert.Equal(t, 2, *tab.Submenus[0].ID, "id подменю с тем же названием сохраняется")

	_, _, err = h.run(t, "", "move-submenu", "2", "--to-tab", "2", "-q")
	require.NoError(t, err)

	b, err := h.repo.GetTab(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, b.Submenus, 1)
	assert.Equal(t, "Two", b.Submenus[0].Name)

	_, _, err = h.run(t, "", "move-submenu", "2")
	assert.Error(t, err)
}

func TestParseSubmenus(t *testing.T) {
	subs, err := parseSubmenus([]string{"Calendar=/cal", "Soon==dummy", "Plain"})
	require.NoError(t, err)
	assert.Equal(t, []models.SubmenuForm{
		{Name: "Calendar", URL: "/cal", LinkType: models.LinkURL},
		{Name: "Soon", URL: "", LinkType: models.LinkDummy},
		{Name: "Plain", LinkType: models.LinkURL},
	}, subs)

	_, err = parseSubmenus([]string{"=/x"})
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	cmd := NewRootCommand(&config.Config{JWTSecret: "k"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--role", "admin"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out.String()), "."))
}
