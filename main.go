package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"training-booking-app/config"
	"training-booking-app/controllers"
	"training-booking-app/controllers/authentication"
	"training-booking-app/controllers/httpCors"
	"training-booking-app/models"
)

func main() {
	cfg := config.LoadConfig()

	// Инициализируем базу данных
	if err := config.InitDB(cfg); err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	// Выполняем миграцию базы данных
	err := config.DB.AutoMigrate(
		&models.User{},
		&models.TrainingElement{},
		&models.Booking{},
	)
	if err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	router := newRouter()

	handler := httpCors.CorsSettings(cfg.Server.AllowedOrigins).Handler(router)

	// Запускаем сервер
	log.Printf("Сервер запущен на порту %s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, handler); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

func newRouter() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", authentication.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authentication.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authentication.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/current_user", authentication.CurrentUser).Methods(http.MethodGet)

	staff := authentication.RequireRoles(models.RoleAdmin, models.RoleInstructor)

	api.HandleFunc("/users", staff(controllers.ListUsers)).Methods(http.MethodGet)

	api.HandleFunc("/training_elements", authentication.RequireLogin(controllers.ListTrainingElements)).Methods(http.MethodGet)
	api.HandleFunc("/training_elements", staff(controllers.CreateTrainingElement)).Methods(http.MethodPost)
	api.HandleFunc("/training_elements/session_types", controllers.ListSessionTypes).Methods(http.MethodGet)
	api.HandleFunc("/training_elements/{id:[0-9]+}", authentication.RequireLogin(controllers.GetTrainingElement)).Methods(http.MethodGet)
	api.HandleFunc("/training_elements/{id:[0-9]+}", staff(controllers.UpdateTrainingElement)).Methods(http.MethodPut)
	api.HandleFunc("/training_elements/{id:[0-9]+}", staff(controllers.DeleteTrainingElement)).Methods(http.MethodDelete)

	api.HandleFunc("/bookings", authentication.RequireLogin(controllers.ListBookings)).Methods(http.MethodGet)
	api.HandleFunc("/bookings", staff(controllers.CreateBooking)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}", authentication.RequireLogin(controllers.GetBooking)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id:[0-9]+}", staff(controllers.UpdateBooking)).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{id:[0-9]+}", staff(controllers.DeleteBooking)).Methods(http.MethodDelete)

	return router
}
