package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCompleted BookingStatus = "completed" // Завершено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено
)

var AllowedBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

type Booking struct {
	ID                uint          `json:"id" gorm:"primaryKey"`
	TrainingElementID uint          `json:"training_element_id"`
	InstructorID      uint          `json:"instructor_id"`
	StudentID         uint          `json:"student_id"`
	StartTime         time.Time     `json:"start_time"`
	EndTime           time.Time     `json:"end_time"`
	Status            BookingStatus `json:"status" gorm:"default:pending"`
	Notes             string        `json:"notes"`
	CreatedByUserID   uint          `json:"created_by_user_id"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	TrainingElement *TrainingElement `json:"-" gorm:"foreignKey:TrainingElementID"`
	Instructor      *User            `json:"-" gorm:"foreignKey:InstructorID"`
	Student         *User            `json:"-" gorm:"foreignKey:StudentID"`
	CreatedBy       *User            `json:"-" gorm:"foreignKey:CreatedByUserID"`
}

func (Booking) TableName() string { return "bookings" }

// BookingView — сериализация брони с денормализованными именами для календаря
type BookingView struct {
	ID                  uint          `json:"id"`
	TrainingElementID   uint          `json:"training_element_id"`
	TrainingElementName string        `json:"training_element_name"`
	InstructorID        uint          `json:"instructor_id"`
	InstructorName      string        `json:"instructor_name"`
	StudentID           uint          `json:"student_id"`
	StudentName         string        `json:"student_name"`
	StartTime           time.Time     `json:"start_time"`
	EndTime             time.Time     `json:"end_time"`
	Status              BookingStatus `json:"status"`
	Notes               string        `json:"notes"`
	CreatedByUserID     uint          `json:"created_by_user_id"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

func (b *Booking) View() BookingView {
	view := BookingView{
		ID:                b.ID,
		TrainingElementID: b.TrainingElementID,
		InstructorID:      b.InstructorID,
		StudentID:         b.StudentID,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		Status:            b.Status,
		Notes:             b.Notes,
		CreatedByUserID:   b.CreatedByUserID,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
	if b.TrainingElement != nil {
		view.TrainingElementName = b.TrainingElement.Name
	}
	if b.Instructor != nil {
		view.InstructorName = b.Instructor.FullName()
	}
	if b.Student != nil {
		view.StudentName = b.Student.FullName()
	}
	return view
}

func ValidBookingStatus(status BookingStatus) bool {
	for _, s := range AllowedBookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Overlaps — пересечение двух полуоткрытых интервалов [start, end)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
