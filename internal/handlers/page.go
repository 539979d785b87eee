package handlers

import (
	"html/template"
	"net/http"

	"stockfolio/internal/logger"
	"stockfolio/internal/middleware"

	"go.uber.org/zap"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="ru">
<head><meta charset="utf-8"><title>Навигация портфеля</title></head>
<body>
  <form id="tab-form" method="post" action="/api/save_tab/">
    <input type="hidden" name="csrfmiddlewaretoken" value="{{.CSRFToken}}">
  </form>
  <ul id="tab-list"></ul>
</body>
</html>
`))

// Page отдаёт страницу редактора со скрытым CSRF-токеном в форме.
func Page(w http.ResponseWriter, r *http.Request) {
	token := middleware.IssueCSRFToken(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, struct{ CSRFToken string }{token}); err != nil {
		logger.WithCtx(r.Context()).Error("page: ошибка рендеринга", zap.Error(err))
	}
}
