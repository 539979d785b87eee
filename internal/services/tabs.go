package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockfolio/internal/logger"
	"stockfolio/internal/models"
	"stockfolio/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTabNotFound  = errors.New("tab not found")
)

type TabService struct{ repo repository.TabRepo }

func NewTabService(r repository.TabRepo) *TabService {
	return &TabService{repo: r}
}

func (s *TabService) ListTabs(ctx context.Context) ([]models.Tab, error) {
	return s.repo.ListTabs(ctx)
}

// SaveTab создаёт вкладку (форма без id) или полностью заменяет
// существующую. Возвращает сохранённую версию.
func (s *TabService) SaveTab(ctx context.Context, form models.TabForm) (models.Tab, error) {
	form = form.Normalize()
	if bad := form.Validate(); len(bad) > 0 {
		return models.Tab{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(bad, ", "))
	}

	tab := models.Tab{
		Name:     form.Name,
		Icon:     form.Icon,
		URLName:  form.URLName,
		LinkType: form.LinkType,
		Submenus: make([]models.Submenu, 0, len(form.Submenus)),
	}
	for _, sf := range form.Submenus {
		tab.Submenus = append(tab.Submenus, models.Submenu{
			ID:       sf.ID,
			Name:     sf.Name,
			URL:      sf.URL,
			LinkType: sf.LinkType,
		})
	}

	var err error
	if form.ID != nil {
		tab.ID = *form.ID
		err = s.repo.UpdateTab(ctx, &tab)
	} else {
		err = s.repo.CreateTab(ctx, &tab)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return models.Tab{}, ErrTabNotFound
	}
	if err != nil {
		return models.Tab{}, err
	}

	logger.WithCtx(ctx).Info("Вкладка сохранена (service)",
		zap.Int("id", tab.ID), zap.Bool("update", form.ID != nil), zap.Int("submenus", len(tab.Submenus)))
	return s.repo.GetTab(ctx, tab.ID)
}

func (s *TabService) DeleteTab(ctx context.Context, id int) error {
	err := s.repo.DeleteTab(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTabNotFound
	}
	return err
}

// SaveOrder сохраняет порядок как есть: последняя запись побеждает.
// Пустой parent_id подменю заменяется id вкладки, в которой оно пришло.
func (s *TabService) SaveOrder(ctx context.Context, order []models.TabOrder) error {
	for i := range order {
		for j := range order[i].Submenus {
			if order[i].Submenus[j].ParentID == 0 {
				order[i].Submenus[j].ParentID = order[i].ID
			}
		}
	}
	return s.repo.SaveOrder(ctx, order)
}
