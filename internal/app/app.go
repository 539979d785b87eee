package app

import (
	"stockfolio/internal/config"
	"stockfolio/internal/db"
	"stockfolio/internal/handlers"
	"stockfolio/internal/logger"
	"stockfolio/internal/repository"
	"stockfolio/internal/routes"
	"stockfolio/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// InitApp собирает зависимости и маршруты. cleanup закрывает пул БД.
func InitApp(cfg *config.Config) (router *mux.Router, cleanup func(), err error) {
	var tabRepo repository.TabRepo
	cleanup = func() {}

	if cfg.UsePostgres() {
		conn, err := db.NewPostgresConnection(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		logger.Log.Info("БД подключена", zap.String("dsn", cfg.GetDSNSafe()))
		tabRepo = repository.NewTabRepository(conn)
		cleanup = conn.Close
	} else {
		logger.Log.Warn("БД не настроена, вкладки хранятся в памяти")
		tabRepo = repository.NewMemoryTabRepository()
	}

	return NewRouter(tabRepo, cfg.JWTSecret), cleanup, nil
}

// NewRouter — маршруты поверх готового хранилища.
func NewRouter(tabRepo repository.TabRepo, jwtSecret string) *mux.Router {
	tabService := services.NewTabService(tabRepo)
	tabHandler := handlers.NewTabHandler(tabService)

	router := mux.NewRouter()
	routes.InitRoutes(router, tabHandler, jwtSecret)
	return router
}
