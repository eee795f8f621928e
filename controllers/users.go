package controllers

import (
	"log"
	"net/http"

	"training-booking-app/config"
	"training-booking-app/models"
)

// ListUsers — список пользователей для форм бронирования
func ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := config.DB.Order("id").Find(&users).Error; err != nil {
		log.Printf("Ошибка при выборке пользователей: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, users)
}
