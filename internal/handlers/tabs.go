package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"stockfolio/internal/logger"
	"stockfolio/internal/models"
	"stockfolio/internal/services"
	helpers "stockfolio/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type TabHandler struct{ svc *services.TabService }

func NewTabHandler(s *services.TabService) *TabHandler {
	return &TabHandler{svc: s}
}

// GetTabs
// @Summary      Получить вкладки навигации
// @Description  Возвращает вкладки по порядку, у каждой — вложенные подменю
// @Tags         navigation
// @Produce      json
// @Success      200 {array}  models.Tab
// @Failure      500 {object} helpers.ErrorResponse
// @Router       /api/get_tabs/ [get]
func (h *TabHandler) GetTabs(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	tabs, err := h.svc.ListTabs(r.Context())
	if err != nil {
		log.Error("navigation: ошибка получения вкладок", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Debug("navigation: вкладки получены", zap.Int("tabs_count", len(tabs)))
	helpers.JSON(w, http.StatusOK, tabs)
}

// SaveTab
// @Summary      Создать или обновить вкладку
// @Description  Без id — создание (вкладка встаёт в конец), с id — полная замена вкладки и её подменю
// @Tags         navigation
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        X-CSRFToken  header  string          true  "CSRF-токен"
// @Param        body         body    models.TabForm  true  "Данные вкладки"
// @Success      200 {object} models.Tab
// @Failure      400 {object} helpers.ErrorResponse
// @Failure      404 {object} helpers.ErrorResponse
// @Failure      500 {object} helpers.ErrorResponse
// @Router       /api/save_tab/ [post]
func (h *TabHandler) SaveTab(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.TabForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("navigation: невалидный JSON при сохранении вкладки", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}

	log.Info("navigation: сохранение вкладки", zap.String("name", req.Name), zap.Any("id", req.ID))

	tab, err := h.svc.SaveTab(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		log.Warn("navigation: вкладка не прошла проверку", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrTabNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Error("navigation: ошибка сохранения вкладки", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("navigation: вкладка сохранена", zap.Int("id", tab.ID))
	helpers.JSON(w, http.StatusOK, tab)
}

// DeleteTab
// @Summary      Удалить вкладку
// @Description  Подменю удаляются вместе с вкладкой
// @Tags         navigation
// @Security     ApiKeyAuth
// @Param        X-CSRFToken  header  string  true  "CSRF-токен"
// @Param        id           path    int     true  "ID вкладки"
// @Success      204 {string} string "No Content"
// @Failure      400 {object} helpers.ErrorResponse
// @Failure      404 {object} helpers.ErrorResponse
// @Failure      500 {object} helpers.ErrorResponse
// @Router       /api/delete_tab/{id}/ [post]
func (h *TabHandler) DeleteTab(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		log.Warn("navigation: неверный id вкладки при удалении", zap.String("raw", idStr))
		helpers.Error(w, http.StatusBadRequest, "bad id")
		return
	}

	log.Info("navigation: удаление вкладки", zap.Int("id", id))
	err = h.svc.DeleteTab(r.Context(), id)
	if errors.Is(err, services.ErrTabNotFound) {
		helpers.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Error("navigation: ошибка удаления вкладки", zap.Error(err), zap.Int("id", id))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("navigation: вкладка удалена", zap.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// SaveOrder
// @Summary      Сохранить порядок вкладок и подменю
// @Description  Полный порядок дерева одним запросом; последняя запись побеждает
// @Tags         navigation
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        X-CSRFToken  header  string             true  "CSRF-токен"
// @Param        body         body    []models.TabOrder  true  "Порядок"
// @Success      200 {object} map[string]string
// @Failure      400 {object} helpers.ErrorResponse
// @Failure      500 {object} helpers.ErrorResponse
// @Router       /api/save_order/ [post]
func (h *TabHandler) SaveOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req []models.TabOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("navigation: невалидный JSON порядка", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "bad json")
		return
	}

	if err := h.svc.SaveOrder(r.Context(), req); err != nil {
		log.Error("navigation: ошибка сохранения порядка", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("navigation: порядок сохранён", zap.Int("tabs_count", len(req)))
	helpers.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
