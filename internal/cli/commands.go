package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stockfolio/internal/config"
	"stockfolio/internal/editor"
	"stockfolio/internal/models"
	"stockfolio/internal/utils"

	"github.com/spf13/cobra"
)

type tabFlags struct {
	name     string
	icon     string
	url      string
	linkType string
	submenus []string
}

func (f *tabFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "display name")
	fs.StringVar(&f.icon, "icon", "", "icon class")
	fs.StringVar(&f.url, "url", "", "view name or URL")
	fs.StringVar(&f.linkType, "link-type", string(models.LinkView), "view, url or dummy")
	fs.StringArrayVar(&f.submenus, "submenu", nil, `submenu as "Name=URL[=type]", repeatable`)
}

func parseSubmenus(values []string) ([]models.SubmenuForm, error) {
	out := make([]models.SubmenuForm, 0, len(values))
	for _, v := range values {
		parts := strings.SplitN(v, "=", 3)
		sf := models.SubmenuForm{Name: parts[0], LinkType: models.LinkURL}
		if len(parts) > 1 {
			sf.URL = parts[1]
		}
		if len(parts) > 2 {
			sf.LinkType = models.LinkType(parts[2])
		}
		if strings.TrimSpace(sf.Name) == "" {
			return nil, fmt.Errorf("submenu %q: empty name", v)
		}
		out = append(out, sf)
	}
	return out, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad id %q", s)
	}
	return id, nil
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show tabs and submenus in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			s.view.Print(cmd.OutOrStdout())
			return nil
		},
	}
}

func newAddCommand(opts *options) *cobra.Command {
	f := &tabFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a tab",
		Example: `  navedit add --name Dividends --icon bi-cash --url dividends \
    --submenu "Calendar=/dividends/calendar" --submenu "History=/dividends/history"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subs, err := parseSubmenus(f.submenus)
			if err != nil {
				return err
			}
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			tab, err := s.editor.CreateOrUpdate(cmd.Context(), models.TabForm{
				Name:     f.name,
				Icon:     f.icon,
				URLName:  f.url,
				LinkType: models.LinkType(f.linkType),
				Submenus: subs,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "tab %d created\n", tab.ID)
			s.print(cmd, opts)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newEditCommand(opts *options) *cobra.Command {
	f := &tabFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace fields of a tab; --submenu replaces the whole submenu list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			form, err := s.editor.EditTab(id)
			if err != nil {
				return fmt.Errorf("tab %d: %w", id, err)
			}

			fs := cmd.Flags()
			if fs.Changed("name") {
				form.Name = f.name
			}
			if fs.Changed("icon") {
				form.Icon = f.icon
			}
			if fs.Changed("url") {
				form.URLName = f.url
			}
			if fs.Changed("link-type") {
				form.LinkType = models.LinkType(f.linkType)
			}
			if fs.Changed("submenu") {
				if form.Submenus, err = mergeSubmenus(form.Submenus, f.submenus); err != nil {
					return err
				}
			}

			if _, err := s.editor.CreateOrUpdate(cmd.Context(), form); err != nil {
				return err
			}
			s.print(cmd, opts)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

// mergeSubmenus сохраняет id подменю с тем же названием, чтобы сервер
// обновил их, а не пересоздал.
func mergeSubmenus(old []models.SubmenuForm, values []string) ([]models.SubmenuForm, error) {
	subs, err := parseSubmenus(values)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*int, len(old))
	for _, o := range old {
		byName[o.Name] = o.ID
	}
	for i := range subs {
		subs[i].ID = byName[subs[i].Name]
	}
	return subs, nil
}

func newDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tab after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			err = s.editor.Delete(cmd.Context(), id)
			if errors.Is(err, editor.ErrCancelled) {
				fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			s.print(cmd, opts)
			return nil
		},
	}
}

func newMoveTabCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "move-tab <id> <target-id>",
		Short: "Drop a tab onto another: after it when moving down, before it when moving up",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.editor.Reorder(cmd.Context(), editor.TabRef(id), editor.TabRef(target)); err != nil {
				return err
			}
			s.print(cmd, opts)
			return nil
		},
	}
}

func newMoveSubmenuCommand(opts *options) *cobra.Command {
	var toTab int
	cmd := &cobra.Command{
		Use:   "move-submenu <id> [<target-submenu-id>]",
		Short: "Drop a submenu onto another submenu or, with --to-tab, at the end of a tab",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if (len(args) == 2) == (toTab != 0) {
				return errors.New("give either a target submenu or --to-tab")
			}
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			item, ok := s.editor.FindSubmenu(id)
			if !ok {
				return fmt.Errorf("submenu %d: %w", id, editor.ErrNotFound)
			}

			target := editor.TabRef(toTab)
			if len(args) == 2 {
				tid, err := parseID(args[1])
				if err != nil {
					return err
				}
				if target, ok = s.editor.FindSubmenu(tid); !ok {
					return fmt.Errorf("submenu %d: %w", tid, editor.ErrNotFound)
				}
			}

			if err := s.editor.Reorder(cmd.Context(), item, target); err != nil {
				return err
			}
			s.print(cmd, opts)
			return nil
		},
	}
	cmd.Flags().IntVar(&toTab, "to-tab", 0, "append to the end of this tab")
	return cmd
}

func newSaveOrderCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "save-order",
		Short: "Re-send the current order of the whole tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			return s.editor.PersistOrder(cmd.Context())
		},
	}
}

func newTokenCommand(cfg *config.Config) *cobra.Command {
	var (
		userID int
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			tok, err := utils.GenerateToken(cfg.JWTSecret, userID, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().IntVar(&userID, "user", 1, "user id claim")
	cmd.Flags().StringVar(&role, "role", "admin", "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
