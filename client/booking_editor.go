package client

import (
	"context"
	"errors"
	"time"
)

// Confirmer запрашивает у пользователя подтверждение разрушительного действия
type Confirmer interface {
	Confirm(prompt string) bool
}

// BookingForm — состояние формы брони
type BookingForm struct {
	TrainingElementID uint
	InstructorID      uint
	StudentID         uint
	StartTime         time.Time
	EndTime           time.Time
	Notes             string
}

// BookingEditor — модальный сценарий создания и редактирования брони.
// До завершения загрузки справочных данных форма неинтерактивна.
type BookingEditor struct {
	api     *Client
	notify  Notifier
	confirm Confirmer

	// Вызывается после успешного create/update/delete
	OnSaveSuccess func()

	existing    *Booking
	Form        BookingForm
	elements    []TrainingElement
	instructors []User
	students    []User
	loaded      bool
	open        bool
	saving      bool
}

func NewBookingEditor(api *Client, notify Notifier, confirm Confirmer) *BookingEditor {
	return &BookingEditor{api: api, notify: notify, confirm: confirm}
}

// Open загружает справочники и предзаполняет форму. initial == nil — новая
// бронь; бронь только с временами — заготовка после протяжки по календарю.
func (e *BookingEditor) Open(ctx context.Context, initial *Booking) error {
	e.open = true
	e.loaded = false
	e.existing = nil
	e.Form = BookingForm{}

	elements, err := e.api.TrainingElements(ctx)
	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	users, err := e.api.Users(ctx)
	if err != nil {
		e.notify.Error(err.Error())
		return err
	}

	e.elements = elements
	e.instructors = filterUsersByRoles(users, "instructor", "admin")
	e.students = filterUsersByRoles(users, "student", "admin")

	if initial != nil {
		if initial.ID != 0 {
			existing := *initial
			e.existing = &existing
		}
		e.Form = BookingForm{
			TrainingElementID: initial.TrainingElementID,
			InstructorID:      initial.InstructorID,
			StudentID:         initial.StudentID,
			StartTime:         initial.StartTime,
			EndTime:           initial.EndTime,
			Notes:             initial.Notes,
		}
	}

	e.loaded = true
	return nil
}

func (e *BookingEditor) Loaded() bool { return e.loaded }
func (e *BookingEditor) IsOpen() bool { return e.open }
func (e *BookingEditor) Saving() bool { return e.saving }
func (e *BookingEditor) Editing() bool { return e.existing != nil }
func (e *BookingEditor) Elements() []TrainingElement { return e.elements }
func (e *BookingEditor) Instructors() []User { return e.instructors }
func (e *BookingEditor) Students() []User { return e.students }

func (e *BookingEditor) Close() {
	e.open = false
	e.loaded = false
	e.existing = nil
	e.Form = BookingForm{}
}

// SessionTypeForSelection — тип сессии выбранного training element
// для отображения рядом с формой
func (e *BookingEditor) SessionTypeForSelection() string {
	for _, element := range e.elements {
		if element.ID == e.Form.TrainingElementID {
			return element.SessionType
		}
	}
	return ""
}

func (e *BookingEditor) validate() error {
	switch {
	case e.Form.TrainingElementID == 0:
		return errors.New("Training element is required.")
	case e.Form.StartTime.IsZero():
		return errors.New("Start time is required.")
	case e.Form.EndTime.IsZero():
		return errors.New("End time is required.")
	case e.Form.InstructorID == 0:
		return errors.New("Instructor is required.")
	case e.Form.StudentID == 0:
		return errors.New("Student is required.")
	case !e.Form.EndTime.After(e.Form.StartTime):
		return errors.New("End time must be after start time.")
	}
	return nil
}

// Submit валидирует форму и отправляет create либо update.
// При ошибке валидации запрос на сервер не уходит.
func (e *BookingEditor) Submit(ctx context.Context) error {
	if !e.loaded {
		return errors.New("booking form is not ready")
	}
	if err := e.validate(); err != nil {
		e.notify.Error(err.Error())
		return err
	}

	e.saving = true
	defer func() { e.saving = false }()

	input := BookingInput{
		TrainingElementID: e.Form.TrainingElementID,
		InstructorID:      e.Form.InstructorID,
		StudentID:         e.Form.StudentID,
		StartTime:         e.Form.StartTime,
		EndTime:           e.Form.EndTime,
		Notes:             e.Form.Notes,
	}

	var message string
	if e.existing != nil {
		resp, err := e.api.UpdateBooking(ctx, e.existing.ID, input)
		if err != nil {
			e.notify.Error(err.Error())
			return err
		}
		message = resp.Message
	} else {
		resp, err := e.api.CreateBooking(ctx, input)
		if err != nil {
			e.notify.Error(err.Error())
			return err
		}
		message = resp.Message
	}

	e.notify.Success(message)
	if e.OnSaveSuccess != nil {
		e.OnSaveSuccess()
	}
	e.Close()
	return nil
}

// Delete доступен только при редактировании и требует явного подтверждения;
// отказ не делает ничего
func (e *BookingEditor) Delete(ctx context.Context) error {
	if e.existing == nil {
		return nil
	}
	if !e.confirm.Confirm("Are you sure you want to delete this booking?") {
		return nil
	}

	e.saving = true
	defer func() { e.saving = false }()

	resp, err := e.api.DeleteBooking(ctx, e.existing.ID)
	if err != nil {
		e.notify.Error(err.Error())
		return err
	}

	e.notify.Success(resp.Message)
	if e.OnSaveSuccess != nil {
		e.OnSaveSuccess()
	}
	e.Close()
	return nil
}

func filterUsersByRoles(users []User, roles ...string) []User {
	out := make([]User, 0, len(users))
	for _, user := range users {
		for _, role := range roles {
			if user.Role == role {
				out = append(out, user)
				break
			}
		}
	}
	return out
}
