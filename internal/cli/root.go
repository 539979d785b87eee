// Package cli — команды navedit для редактирования навигации портфеля.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"stockfolio/internal/client"
	"stockfolio/internal/config"
	"stockfolio/internal/editor"

	"github.com/spf13/cobra"
)

type options struct {
	server    string
	csrfToken string
	csrfPage  string
	token     string
	timeout   time.Duration
	yes       bool
	quiet     bool
}

// session — редактор, загруженный с сервера, и его представление.
type session struct {
	editor *editor.Editor
	view   *TableView
}

// NewRootCommand собирает дерево команд; значения по умолчанию берутся из cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "navedit",
		Short:         "Edit portfolio navigation tabs and submenus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.server, "server", cfg.ServerURL, "server base URL")
	pf.StringVar(&opts.csrfToken, "csrf-token", cfg.CSRFToken, "CSRF token (read from --csrf-page when empty)")
	pf.StringVar(&opts.csrfPage, "csrf-page", cfg.CSRFPage, "page with the hidden csrfmiddlewaretoken field (default: server root)")
	pf.StringVar(&opts.token, "token", cfg.AccessToken, "bearer access token")
	pf.DurationVar(&opts.timeout, "timeout", cfg.HTTPTimeout, "HTTP timeout, 0 for none")
	pf.BoolVarP(&opts.yes, "yes", "y", false, "do not ask for confirmation")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the resulting tree")

	root.AddCommand(
		newListCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newDeleteCommand(opts),
		newMoveTabCommand(opts),
		newMoveSubmenuCommand(opts),
		newSaveOrderCommand(opts),
		newTokenCommand(cfg),
	)
	return root
}

// open создаёт клиент, получает CSRF-токен и загружает дерево.
func open(cmd *cobra.Command, opts *options) (*session, error) {
	ctx := cmd.Context()

	c := client.NewClient(opts.server, opts.csrfToken, opts.timeout)
	c.AccessToken = opts.token
	if c.CSRFToken == "" {
		page := opts.csrfPage
		if page == "" {
			page = c.BaseURL + "/"
		}
		if _, err := c.FetchCSRFToken(ctx, page); err != nil {
			return nil, fmt.Errorf("csrf token: %w", err)
		}
	}

	view := &TableView{}
	e := editor.NewEditor(c,
		editor.WithView(view),
		editor.WithConfirmer(promptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr(), opts.yes)),
		editor.WithAlerter(editor.AlertFunc(func(msg string) {
			fmt.Fprintln(cmd.ErrOrStderr(), "!", msg)
		})),
	)
	if _, err := e.LoadAll(ctx); err != nil {
		return nil, fmt.Errorf("load tabs: %w", err)
	}
	return &session{editor: e, view: view}, nil
}

func (s *session) print(cmd *cobra.Command, opts *options) {
	if !opts.quiet {
		s.view.Print(cmd.OutOrStdout())
	}
}

func promptConfirmer(in io.Reader, out io.Writer, yes bool) editor.Confirmer {
	return editor.ConfirmFunc(func(_ context.Context, prompt string) bool {
		if yes {
			return true
		}
		fmt.Fprint(out, prompt+" [y/N]: ")
		line, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "д", "да":
			return true
		}
		return false
	})
}
