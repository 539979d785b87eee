package routes

import (
	"net/http"

	"stockfolio/internal/handlers"
	"stockfolio/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(router *mux.Router, tabHandler *handlers.TabHandler, jwtSecret string) {
	router.Use(middleware.RequestID, middleware.Recoverer, middleware.Logging)

	router.HandleFunc("/", handlers.Page).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.CSRF)
	api.Use(middleware.JWTAuth(jwtSecret))
	api.Use(middleware.OnlyRole("admin", jwtSecret != ""))

	api.HandleFunc("/get_tabs/", tabHandler.GetTabs).Methods(http.MethodGet)
	api.HandleFunc("/save_tab/", tabHandler.SaveTab).Methods(http.MethodPost)
	api.HandleFunc("/delete_tab/{id:[0-9]+}/", tabHandler.DeleteTab).Methods(http.MethodPost)
	api.HandleFunc("/save_order/", tabHandler.SaveOrder).Methods(http.MethodPost)
}
