package models

import "time"

// Допустимые типы сессий, отдаются фронтенду для выпадающего списка
var AllowedSessionTypes = []string{"classroom", "hands_on", "e_learning", "assessment"}

type TrainingElement struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	SessionType     string    `json:"session_type"`
	MaterialLink    string    `json:"material_link"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (TrainingElement) TableName() string { return "training_elements" }

func ValidSessionType(sessionType string) bool {
	for _, t := range AllowedSessionTypes {
		if t == sessionType {
			return true
		}
	}
	return false
}
