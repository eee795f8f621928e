package client

import (
	"context"
	"fmt"
	"time"
)

// Event — событие календаря в формате, совместимом с FullCalendar
type Event struct {
	ID      uint      `json:"id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Color   string    `json:"color"`
	Booking Booking   `json:"-"`
}

// CalendarView загружает брони, фильтрует их по роли текущего пользователя
// и держит события для отрисовки. Таблица цветов — поле вью и сбрасывается
// в начале каждого Refresh, а не модульное состояние.
type CalendarView struct {
	api     *Client
	session *SessionProvider
	notify  Notifier

	colors       *colorTable
	events       []Event
	emptyMessage string
}

func NewCalendarView(api *Client, session *SessionProvider, notify Notifier) *CalendarView {
	return &CalendarView{
		api:     api,
		session: session,
		notify:  notify,
		colors:  newColorTable(defaultPalette),
	}
}

// Refresh полностью пересобирает события с нуля
func (v *CalendarView) Refresh(ctx context.Context) error {
	v.colors = newColorTable(defaultPalette)
	v.events = nil
	v.emptyMessage = ""

	user := v.session.User()
	if user == nil {
		v.emptyMessage = "Please log in to view and manage your training schedule."
		return nil
	}

	bookings, err := v.api.Bookings(ctx)
	if err != nil {
		v.notify.Error("Failed to load bookings.")
		return err
	}

	visible := FilterByRole(bookings, user)
	if len(visible) == 0 {
		v.emptyMessage = emptyMessageForRole(user.Role)
		return nil
	}

	events := make([]Event, 0, len(visible))
	for _, booking := range visible {
		title := booking.TrainingElementName
		if title == "" {
			title = "No Title"
		}
		events = append(events, Event{
			ID:      booking.ID,
			Title:   title,
			Start:   booking.StartTime,
			End:     booking.EndTime,
			Color:   v.colors.colorFor(booking.TrainingElementID),
			Booking: booking,
		})
	}
	v.events = events
	return nil
}

func (v *CalendarView) Events() []Event { return v.events }
func (v *CalendarView) EmptyMessage() string { return v.emptyMessage }

// FilterByRole: студент видит только свои брони, инструктор — только свои,
// админ — все
func FilterByRole(bookings []Booking, user *User) []Booking {
	if user == nil {
		return nil
	}
	switch user.Role {
	case "student":
		out := make([]Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.StudentID == user.ID {
				out = append(out, b)
			}
		}
		return out
	case "instructor":
		out := make([]Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.InstructorID == user.ID {
				out = append(out, b)
			}
		}
		return out
	default:
		return bookings
	}
}

func emptyMessageForRole(role string) string {
	switch role {
	case "student":
		return "No training elements booked for you. Please consult your instructor or administrator."
	case "instructor":
		return "You have no training elements booked. Please arrange new bookings with your students."
	default:
		return "No training elements have been booked yet."
	}
}

// ClickEvent — клик по событию: бронь для предзаполнения редактора
func (v *CalendarView) ClickEvent(eventID uint) *Booking {
	for i := range v.events {
		if v.events[i].ID == eventID {
			booking := v.events[i].Booking
			return &booking
		}
	}
	return nil
}

// SelectRange — протяжка по пустому месту: заготовка новой брони,
// заполнены только времена
func (v *CalendarView) SelectRange(start, end time.Time) *Booking {
	return &Booking{StartTime: start, EndTime: end}
}

// EventDrop — перетаскивание события. Обновление уходит на сервер сразу;
// при отказе событие возвращается на прежнее место, при успехе
// оптимистичное смещение остаётся без повторной загрузки.
func (v *CalendarView) EventDrop(ctx context.Context, eventID uint, newStart, newEnd time.Time) error {
	var event *Event
	for i := range v.events {
		if v.events[i].ID == eventID {
			event = &v.events[i]
			break
		}
	}
	if event == nil {
		return fmt.Errorf("no event with id %d", eventID)
	}

	oldStart, oldEnd := event.Start, event.End
	event.Start, event.End = newStart, newEnd

	input := BookingInput{
		TrainingElementID: event.Booking.TrainingElementID,
		InstructorID:      event.Booking.InstructorID,
		StudentID:         event.Booking.StudentID,
		StartTime:         newStart,
		EndTime:           newEnd,
		Status:            event.Booking.Status,
		Notes:             event.Booking.Notes,
	}
	if _, err := v.api.UpdateBooking(ctx, eventID, input); err != nil {
		event.Start, event.End = oldStart, oldEnd
		v.notify.Error(err.Error())
		return err
	}

	event.Booking.StartTime = newStart
	event.Booking.EndTime = newEnd
	v.notify.Success(fmt.Sprintf("Booking %q moved successfully!", event.Title))
	return nil
}

// OnSaveSuccess — колбэк для редактора: после любого успешного
// create/update/delete календарь перечитывает данные целиком
func (v *CalendarView) OnSaveSuccess(ctx context.Context) func() {
	return func() {
		_ = v.Refresh(ctx)
	}
}
