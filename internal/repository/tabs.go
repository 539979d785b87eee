package repository

import (
	"context"
	"database/sql"
	"errors"

	"stockfolio/internal/logger"
	"stockfolio/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not found")

// TabRepo — хранилище вкладок навигации.
type TabRepo interface {
	ListTabs(ctx context.Context) ([]models.Tab, error)
	GetTab(ctx context.Context, id int) (models.Tab, error)
	CreateTab(ctx context.Context, t *models.Tab) error
	UpdateTab(ctx context.Context, t *models.Tab) error
	DeleteTab(ctx context.Context, id int) error
	SaveOrder(ctx context.Context, order []models.TabOrder) error
}

type TabRepository struct {
	db *pgxpool.Pool
}

func NewTabRepository(db *pgxpool.Pool) *TabRepository { return &TabRepository{db: db} }

const treeQuery = `
SELECT
  t.id, t.name, t.icon, t.url_name, t.link_type, t.position,
  -- nullable поля подменю (из LEFT JOIN)
  s.id, s.tab_id, s.name, s.url, s.link_type, s.position
FROM nav_tabs t
LEFT JOIN nav_submenus s ON s.tab_id = t.id
`

func (r *TabRepository) ListTabs(ctx context.Context) ([]models.Tab, error) {
	rows, err := r.db.Query(ctx, treeQuery+` ORDER BY t.position, t.id, s.position, s.id`)
	if err != nil {
		return nil, err
	}
	return scanTree(rows)
}

func (r *TabRepository) GetTab(ctx context.Context, id int) (models.Tab, error) {
	rows, err := r.db.Query(ctx, treeQuery+` WHERE t.id = $1 ORDER BY s.position, s.id`, id)
	if err != nil {
		return models.Tab{}, err
	}
	tabs, err := scanTree(rows)
	if err != nil {
		return models.Tab{}, err
	}
	if len(tabs) == 0 {
		return models.Tab{}, ErrNotFound
	}
	return tabs[0], nil
}

func scanTree(rows pgx.Rows) ([]models.Tab, error) {
	defer rows.Close()

	out := []models.Tab{}
	var cur *models.Tab

	for rows.Next() {
		var t models.Tab
		var (
			subID       sql.NullInt32
			subTabID    sql.NullInt32
			subName     sql.NullString
			subURL      sql.NullString
			subLinkType sql.NullString
			subPos      sql.NullInt32
		)

		if err := rows.Scan(
			&t.ID, &t.Name, &t.Icon, &t.URLName, &t.LinkType, &t.Order,
			&subID, &subTabID, &subName, &subURL, &subLinkType, &subPos,
		); err != nil {
			return nil, err
		}

		if cur == nil || cur.ID != t.ID {
			t.Submenus = []models.Submenu{}
			out = append(out, t)
			cur = &out[len(out)-1]
		}

		if subID.Valid {
			id := int(subID.Int32)
			cur.Submenus = append(cur.Submenus, models.Submenu{
				ID:       &id,
				ParentID: int(subTabID.Int32),
				Name:     subName.String,
				URL:      subURL.String,
				LinkType: models.LinkType(subLinkType.String),
				Order:    int(subPos.Int32),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTab добавляет вкладку в конец списка вместе с подменю.
func (r *TabRepository) CreateTab(ctx context.Context, t *models.Tab) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO nav_tabs (name, icon, url_name, link_type, position)
VALUES ($1, $2, $3, $4, (SELECT COALESCE(MAX(position) + 1, 0) FROM nav_tabs))
RETURNING id, position`,
			t.Name, t.Icon, t.URLName, t.LinkType,
		).Scan(&t.ID, &t.Order)
		if err != nil {
			return err
		}
		return replaceSubmenus(ctx, tx, t)
	})
}

// UpdateTab полностью заменяет вкладку и её подменю.
func (r *TabRepository) UpdateTab(ctx context.Context, t *models.Tab) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
UPDATE nav_tabs SET name=$1, icon=$2, url_name=$3, link_type=$4, updated_at=now()
WHERE id=$5
RETURNING position`,
			t.Name, t.Icon, t.URLName, t.LinkType, t.ID,
		).Scan(&t.Order)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return replaceSubmenus(ctx, tx, t)
	})
}

// replaceSubmenus удаляет подменю, которых нет в t.Submenus, обновляет
// существующие (в т.ч. переносит из другой вкладки) и вставляет новые.
func replaceSubmenus(ctx context.Context, tx pgx.Tx, t *models.Tab) error {
	keep := []int32{}
	for _, s := range t.Submenus {
		if s.ID != nil {
			keep = append(keep, int32(*s.ID))
		}
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM nav_submenus WHERE tab_id=$1 AND NOT (id = ANY($2))`, t.ID, keep,
	); err != nil {
		return err
	}

	for i := range t.Submenus {
		s := &t.Submenus[i]
		s.ParentID = t.ID
		s.Order = i

		if s.ID != nil {
			tag, err := tx.Exec(ctx, `
UPDATE nav_submenus SET tab_id=$1, name=$2, url=$3, link_type=$4, position=$5, updated_at=now()
WHERE id=$6`,
				t.ID, s.Name, s.URL, s.LinkType, i, *s.ID,
			)
			if err != nil {
				return err
			}
			if tag.RowsAffected() > 0 {
				continue
			}
		}

		var id int
		if err := tx.QueryRow(ctx, `
INSERT INTO nav_submenus (tab_id, name, url, link_type, position)
VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			t.ID, s.Name, s.URL, s.LinkType, i,
		).Scan(&id); err != nil {
			return err
		}
		s.ID = &id
	}
	return nil
}

func (r *TabRepository) DeleteTab(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM nav_tabs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveOrder записывает порядок одной транзакцией. Неизвестные id и
// подменю без id пропускаются.
func (r *TabRepository) SaveOrder(ctx context.Context, order []models.TabOrder) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, t := range order {
			batch.Queue(`UPDATE nav_tabs SET position=$1, updated_at=now() WHERE id=$2`, t.Order, t.ID)
			for _, s := range t.Submenus {
				if s.ID == nil {
					continue
				}
				batch.Queue(`
UPDATE nav_submenus SET tab_id=$1, position=$2, updated_at=now()
WHERE id=$3 AND EXISTS (SELECT 1 FROM nav_tabs WHERE id=$1)`,
					s.ParentID, s.Order, *s.ID)
			}
		}

		logger.WithCtx(ctx).Debug("repo: сохранение порядка", zap.Int("queries", batch.Len()))
		return tx.SendBatch(ctx, batch).Close()
	})
}
