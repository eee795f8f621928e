package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"training-booking-app/config"
	"training-booking-app/controllers/authentication"
	"training-booking-app/models"
)

type bookingRequest struct {
	TrainingElementID *uint                 `json:"training_element_id"`
	InstructorID      *uint                 `json:"instructor_id"`
	StudentID         *uint                 `json:"student_id"`
	StartTime         *time.Time            `json:"start_time"`
	EndTime           *time.Time            `json:"end_time"`
	Status            *models.BookingStatus `json:"status"`
	Notes             *string               `json:"notes"`
}

type bookingResponse struct {
	Message string             `json:"message"`
	Booking models.BookingView `json:"booking"`
}

type bookingConflictResponse struct {
	Message   string               `json:"message"`
	Conflicts []models.BookingView `json:"conflicts"`
}

// ListBookings — выборка броней с необязательными фильтрами из query string
func ListBookings(w http.ResponseWriter, r *http.Request) {
	query := config.DB.
		Preload("TrainingElement").
		Preload("Instructor").
		Preload("Student")

	q := r.URL.Query()
	if name := q.Get("training_element_name"); name != "" {
		query = query.Joins("JOIN training_elements ON training_elements.id = bookings.training_element_id").
			Where("training_elements.name ILIKE ?", "%"+name+"%")
	}
	if raw := q.Get("start_time"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteMessage(w, http.StatusBadRequest, "Invalid datetime format. Use ISO 8601 (e.g., 'YYYY-MM-DDTHH:MM:SSZ')")
			return
		}
		query = query.Where("bookings.start_time >= ?", start)
	}
	if raw := q.Get("end_time"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteMessage(w, http.StatusBadRequest, "Invalid datetime format. Use ISO 8601 (e.g., 'YYYY-MM-DDTHH:MM:SSZ')")
			return
		}
		query = query.Where("bookings.end_time <= ?", end)
	}
	if raw := q.Get("instructor_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			WriteMessage(w, http.StatusBadRequest, "instructor_id must be a valid integer")
			return
		}
		query = query.Where("bookings.instructor_id = ?", id)
	}
	if raw := q.Get("student_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			WriteMessage(w, http.StatusBadRequest, "student_id must be a valid integer")
			return
		}
		query = query.Where("bookings.student_id = ?", id)
	}
	if status := q.Get("status"); status != "" {
		if !models.ValidBookingStatus(models.BookingStatus(status)) {
			WriteMessage(w, http.StatusBadRequest, "Invalid status filter. Allowed statuses: "+strings.Join(statusNames(), ", "))
			return
		}
		query = query.Where("bookings.status = ?", status)
	}
	if raw := q.Get("created_by_user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			WriteMessage(w, http.StatusBadRequest, "created_by_user_id must be a valid integer")
			return
		}
		query = query.Where("bookings.created_by_user_id = ?", id)
	}

	var bookings []models.Booking
	if err := query.Order("bookings.start_time").Find(&bookings).Error; err != nil {
		log.Printf("Ошибка при выборке броней: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]models.BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, bookings[i].View())
	}
	WriteJSON(w, http.StatusOK, views)
}

func GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := findBooking(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, booking.View())
}

// CreateBooking — создание брони с проверкой пересечений по времени
func CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var missing []string
	if req.TrainingElementID == nil {
		missing = append(missing, "training_element_id")
	}
	if req.StartTime == nil {
		missing = append(missing, "start_time")
	}
	if req.EndTime == nil {
		missing = append(missing, "end_time")
	}
	if len(missing) > 0 {
		WriteMessage(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	if !req.EndTime.After(*req.StartTime) {
		WriteMessage(w, http.StatusBadRequest, "Booking end_time must be after start_time")
		return
	}

	var element models.TrainingElement
	if err := config.DB.First(&element, *req.TrainingElementID).Error; err != nil {
		WriteMessage(w, http.StatusBadRequest, "Training element not found")
		return
	}

	booking := models.Booking{
		TrainingElementID: *req.TrainingElementID,
		StartTime:         *req.StartTime,
		EndTime:           *req.EndTime,
		Status:            models.BookingStatusPending,
		CreatedByUserID:   authentication.UserFromContext(r).ID,
	}
	if req.InstructorID != nil {
		if !userExists(*req.InstructorID) {
			WriteMessage(w, http.StatusBadRequest, "Instructor not found")
			return
		}
		booking.InstructorID = *req.InstructorID
	}
	if req.StudentID != nil {
		if !userExists(*req.StudentID) {
			WriteMessage(w, http.StatusBadRequest, "Student not found")
			return
		}
		booking.StudentID = *req.StudentID
	}
	if req.Status != nil {
		if !models.ValidBookingStatus(*req.Status) {
			WriteMessage(w, http.StatusBadRequest, "Invalid status. Allowed statuses: "+strings.Join(statusNames(), ", "))
			return
		}
		booking.Status = *req.Status
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	conflicts, err := findConflicts(&booking)
	if err != nil {
		log.Printf("Ошибка при проверке пересечений: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(conflicts) > 0 {
		WriteJSON(w, http.StatusConflict, bookingConflictResponse{
			Message:   "Booking conflict: instructor or student is already booked during this time.",
			Conflicts: conflicts,
		})
		return
	}

	if err := config.DB.Create(&booking).Error; err != nil {
		log.Printf("Ошибка при создании брони: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	reloadBooking(&booking)

	WriteJSON(w, http.StatusCreated, bookingResponse{
		Message: "Booking created successfully!",
		Booking: booking.View(),
	})
}

// UpdateBooking — частичное обновление с повторной проверкой пересечений,
// если менялись время или участники
func UpdateBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := findBooking(w, r)
	if !ok {
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	originalStart := booking.StartTime
	originalEnd := booking.EndTime
	originalInstructor := booking.InstructorID
	originalStudent := booking.StudentID

	if req.TrainingElementID != nil {
		var element models.TrainingElement
		if err := config.DB.First(&element, *req.TrainingElementID).Error; err != nil {
			WriteMessage(w, http.StatusBadRequest, "Training element not found")
			return
		}
		booking.TrainingElementID = *req.TrainingElementID
	}
	if req.InstructorID != nil {
		if !userExists(*req.InstructorID) {
			WriteMessage(w, http.StatusBadRequest, "Instructor not found")
			return
		}
		booking.InstructorID = *req.InstructorID
	}
	if req.StudentID != nil {
		if !userExists(*req.StudentID) {
			WriteMessage(w, http.StatusBadRequest, "Student not found")
			return
		}
		booking.StudentID = *req.StudentID
	}
	if req.StartTime != nil {
		booking.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		booking.EndTime = *req.EndTime
	}
	if !booking.EndTime.After(booking.StartTime) {
		WriteMessage(w, http.StatusBadRequest, "Booking end_time must be after start_time")
		return
	}
	if req.Status != nil {
		if !models.ValidBookingStatus(*req.Status) {
			WriteMessage(w, http.StatusBadRequest, "Invalid status. Allowed statuses: "+strings.Join(statusNames(), ", "))
			return
		}
		booking.Status = *req.Status
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	timingChanged := !booking.StartTime.Equal(originalStart) ||
		!booking.EndTime.Equal(originalEnd) ||
		booking.InstructorID != originalInstructor ||
		booking.StudentID != originalStudent
	if timingChanged {
		conflicts, err := findConflicts(&booking)
		if err != nil {
			log.Printf("Ошибка при проверке пересечений: %v", err)
			WriteMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if len(conflicts) > 0 {
			WriteJSON(w, http.StatusConflict, bookingConflictResponse{
				Message:   "Booking conflict: instructor or student is already booked during this time.",
				Conflicts: conflicts,
			})
			return
		}
	}

	// Save без Omit перезаписал бы FK из предзагруженных ассоциаций
	if err := config.DB.Omit(clause.Associations).Save(&booking).Error; err != nil {
		log.Printf("Ошибка при обновлении брони: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	reloadBooking(&booking)

	WriteJSON(w, http.StatusOK, bookingResponse{
		Message: "Booking updated successfully!",
		Booking: booking.View(),
	})
}

// DeleteBooking — админ удаляет любую бронь, инструктор только созданную им
func DeleteBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := findBooking(w, r)
	if !ok {
		return
	}

	user := authentication.UserFromContext(r)
	switch {
	case user.Role == models.RoleAdmin:
	case user.Role == models.RoleInstructor && booking.CreatedByUserID == user.ID:
	default:
		WriteMessage(w, http.StatusForbidden, "Access denied: you must be an admin or the creator of this booking to delete it.")
		return
	}

	if err := config.DB.Delete(&booking).Error; err != nil {
		log.Printf("Ошибка при удалении брони: %v", err)
		WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteMessage(w, http.StatusOK, "Booking deleted successfully!")
}

// findConflicts ищет чужие брони, пересекающиеся по времени
// с тем же инструктором или студентом
func findConflicts(booking *models.Booking) ([]models.BookingView, error) {
	if booking.InstructorID == 0 && booking.StudentID == 0 {
		return nil, nil
	}

	party := config.DB.Where("1 = 0")
	if booking.InstructorID != 0 {
		party = party.Or("instructor_id = ?", booking.InstructorID)
	}
	if booking.StudentID != 0 {
		party = party.Or("student_id = ?", booking.StudentID)
	}

	var candidates []models.Booking
	err := config.DB.
		Preload("TrainingElement").
		Preload("Instructor").
		Preload("Student").
		Where("id <> ?", booking.ID).
		Where(party).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var views []models.BookingView
	for i := range candidates {
		if models.Overlaps(booking.StartTime, booking.EndTime, candidates[i].StartTime, candidates[i].EndTime) {
			views = append(views, candidates[i].View())
		}
	}
	return views, nil
}

func findBooking(w http.ResponseWriter, r *http.Request) (models.Booking, bool) {
	var booking models.Booking
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteMessage(w, http.StatusBadRequest, "Invalid id")
		return booking, false
	}
	err = config.DB.
		Preload("TrainingElement").
		Preload("Instructor").
		Preload("Student").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteMessage(w, http.StatusNotFound, "Booking not found")
		} else {
			log.Printf("Ошибка при выборке брони: %v", err)
			WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return booking, false
	}
	return booking, true
}

func reloadBooking(booking *models.Booking) {
	config.DB.
		Preload("TrainingElement").
		Preload("Instructor").
		Preload("Student").
		First(booking, booking.ID)
}

func userExists(id uint) bool {
	var user models.User
	return config.DB.First(&user, id).Error == nil
}

func statusNames() []string {
	names := make([]string, 0, len(models.AllowedBookingStatuses))
	for _, s := range models.AllowedBookingStatuses {
		names = append(names, string(s))
	}
	return names
}
