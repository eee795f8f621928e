package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"training-booking-app/config"
	"training-booking-app/models"
)

type trainingElementRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	SessionType     *string `json:"session_type"`
	MaterialLink    *string `json:"material_link"`
}

type trainingElementResponse struct {
	Message string                 `json:"message"`
	Element models.TrainingElement `json:"element"`
}

// ListTrainingElements — каталог шаблонов, доступен всем вошедшим
func ListTrainingElements(w http.ResponseWriter, r *http.Request) {
	var elements []models.TrainingElement
	if err := config.DB.Order("id").Find(&elements).Error; err != nil {
		log.Printf("Ошибка при выборке training elements: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, elements)
}

// ListSessionTypes — допустимые типы сессий для выпадающего списка
func ListSessionTypes(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, models.AllowedSessionTypes)
}

func GetTrainingElement(w http.ResponseWriter, r *http.Request) {
	element, ok := findTrainingElement(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, element)
}

func CreateTrainingElement(w http.ResponseWriter, r *http.Request) {
	var req trainingElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Проверка обязательных полей
	var missing []string
	if req.Name == nil || *req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Description == nil || *req.Description == "" {
		missing = append(missing, "description")
	}
	if req.DurationMinutes == nil {
		missing = append(missing, "duration_minutes")
	}
	if req.SessionType == nil || *req.SessionType == "" {
		missing = append(missing, "session_type")
	}
	if len(missing) > 0 {
		WriteMessage(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	if *req.DurationMinutes <= 0 {
		WriteMessage(w, http.StatusBadRequest, "Duration must be a positive number")
		return
	}
	if !models.ValidSessionType(*req.SessionType) {
		WriteMessage(w, http.StatusBadRequest, "Invalid session type. Allowed types: classroom, hands_on, e_learning, assessment")
		return
	}

	element := models.TrainingElement{
		Name:            *req.Name,
		Description:     *req.Description,
		DurationMinutes: *req.DurationMinutes,
		SessionType:     *req.SessionType,
	}
	if req.MaterialLink != nil {
		element.MaterialLink = *req.MaterialLink
	}
	if err := config.DB.Create(&element).Error; err != nil {
		log.Printf("Ошибка при создании training element: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusCreated, trainingElementResponse{
		Message: "Training element created successfully!",
		Element: element,
	})
}

// UpdateTrainingElement — частичное обновление, присланные поля перезаписывают старые
func UpdateTrainingElement(w http.ResponseWriter, r *http.Request) {
	element, ok := findTrainingElement(w, r)
	if !ok {
		return
	}

	var req trainingElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if req.Name != nil {
		element.Name = *req.Name
	}
	if req.Description != nil {
		element.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			WriteMessage(w, http.StatusBadRequest, "Duration must be a positive number")
			return
		}
		element.DurationMinutes = *req.DurationMinutes
	}
	if req.SessionType != nil {
		if !models.ValidSessionType(*req.SessionType) {
			WriteMessage(w, http.StatusBadRequest, "Invalid session type. Allowed types: classroom, hands_on, e_learning, assessment")
			return
		}
		element.SessionType = *req.SessionType
	}
	if req.MaterialLink != nil {
		element.MaterialLink = *req.MaterialLink
	}

	if err := config.DB.Save(&element).Error; err != nil {
		log.Printf("Ошибка при обновлении training element: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, trainingElementResponse{
		Message: "Training element updated successfully!",
		Element: element,
	})
}

func DeleteTrainingElement(w http.ResponseWriter, r *http.Request) {
	element, ok := findTrainingElement(w, r)
	if !ok {
		return
	}
	if err := config.DB.Delete(&element).Error; err != nil {
		log.Printf("Ошибка при удалении training element: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteMessage(w, http.StatusOK, "Training element deleted successfully!")
}

func findTrainingElement(w http.ResponseWriter, r *http.Request) (models.TrainingElement, bool) {
	var element models.TrainingElement
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteMessage(w, http.StatusBadRequest, "Invalid id")
		return element, false
	}
	if err := config.DB.First(&element, id).Error; err != nil {
		WriteMessage(w, http.StatusNotFound, "Training element not found")
		return element, false
	}
	return element, true
}
