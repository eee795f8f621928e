package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func sampleBookings() []Booking {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return []Booking{
		{ID: 1, TrainingElementID: 1, TrainingElementName: "Fire Safety", InstructorID: 2, StudentID: 5, StartTime: start, EndTime: start.Add(time.Hour)},
		{ID: 2, TrainingElementID: 2, TrainingElementName: "First Aid", InstructorID: 2, StudentID: 6, StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour)},
		{ID: 3, TrainingElementID: 1, TrainingElementName: "Fire Safety", InstructorID: 3, StudentID: 7, StartTime: start.Add(4 * time.Hour), EndTime: start.Add(5 * time.Hour)},
	}
}

func TestFilterByRole(t *testing.T) {
	bookings := sampleBookings()
	tests := []struct {
		name    string
		user    *User
		wantIDs []uint
	}{
		{"student sees own bookings only", &User{ID: 5, Role: "student"}, []uint{1}},
		{"instructor sees own bookings only", &User{ID: 2, Role: "instructor"}, []uint{1, 2}},
		{"admin sees everything", &User{ID: 9, Role: "admin"}, []uint{1, 2, 3}},
		{"nil user sees nothing", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByRole(bookings, tt.user)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d bookings, want %d", len(got), len(tt.wantIDs))
			}
			for i, b := range got {
				if b.ID != tt.wantIDs[i] {
					t.Errorf("booking[%d].ID = %d, want %d", i, b.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func calendarForUser(t *testing.T, user *User, handler http.Handler) (*CalendarView, *stubNotifier) {
	t.Helper()
	api := newTestClient(t, handler)
	notify := &stubNotifier{}
	session := NewSessionProvider(api, &stubNavigator{}, notify)
	session.user = user
	session.ready = true
	return NewCalendarView(api, session, notify), notify
}

func bookingsHandler(t *testing.T, bookings []Booking) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(t, w, http.StatusOK, bookings)
	})
}

func TestRefreshBuildsEventsForVisibleBookings(t *testing.T) {
	view, notify := calendarForUser(t, &User{ID: 2, Role: "instructor"}, bookingsHandler(t, sampleBookings()))

	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	events := view.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Title != "Fire Safety" || events[1].Title != "First Aid" {
		t.Errorf("titles = %q, %q", events[0].Title, events[1].Title)
	}
	if view.EmptyMessage() != "" {
		t.Errorf("empty message set with visible bookings: %q", view.EmptyMessage())
	}
	if len(notify.errors) != 0 {
		t.Errorf("refresh produced errors: %v", notify.errors)
	}
}

func TestRefreshUsesNoTitleFallback(t *testing.T) {
	bookings := []Booking{{ID: 1, TrainingElementID: 4, StudentID: 5, StartTime: time.Now(), EndTime: time.Now().Add(time.Hour)}}
	view, _ := calendarForUser(t, &User{ID: 9, Role: "admin"}, bookingsHandler(t, bookings))

	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := view.Events()[0].Title; got != "No Title" {
		t.Errorf("title = %q, want No Title", got)
	}
}

func TestRefreshEmptyMessagesPerRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"student", "No training elements booked for you. Please consult your instructor or administrator."},
		{"instructor", "You have no training elements booked. Please arrange new bookings with your students."},
		{"admin", "No training elements have been booked yet."},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			view, _ := calendarForUser(t, &User{ID: 42, Role: tt.role}, bookingsHandler(t, nil))
			if err := view.Refresh(context.Background()); err != nil {
				t.Fatalf("Refresh: %v", err)
			}
			if view.EmptyMessage() != tt.want {
				t.Errorf("message = %q, want %q", view.EmptyMessage(), tt.want)
			}
			if len(view.Events()) != 0 {
				t.Errorf("got %d events, want 0", len(view.Events()))
			}
		})
	}
}

func TestRefreshWithoutUserAsksToLogIn(t *testing.T) {
	view, _ := calendarForUser(t, nil, bookingsHandler(t, sampleBookings()))

	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	want := "Please log in to view and manage your training schedule."
	if view.EmptyMessage() != want {
		t.Errorf("message = %q, want %q", view.EmptyMessage(), want)
	}
}

func TestEventColorsStablePerElement(t *testing.T) {
	view, _ := calendarForUser(t, &User{ID: 9, Role: "admin"}, bookingsHandler(t, sampleBookings()))

	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	events := view.Events()
	// брони 1 и 3 используют один тренировочный элемент
	if events[0].Color != events[2].Color {
		t.Errorf("same element got colors %q and %q", events[0].Color, events[2].Color)
	}
	if events[0].Color == events[1].Color {
		t.Errorf("different elements share color %q", events[0].Color)
	}
	if events[0].Color != defaultPalette[0] {
		t.Errorf("first element color = %q, want %q", events[0].Color, defaultPalette[0])
	}
}

func TestColorTableCyclesPalette(t *testing.T) {
	table := newColorTable(defaultPalette)
	for i := 0; i < len(defaultPalette); i++ {
		if got := table.colorFor(uint(i + 1)); got != defaultPalette[i] {
			t.Errorf("element %d color = %q, want %q", i+1, got, defaultPalette[i])
		}
	}
	// девятый элемент начинает палитру заново
	if got := table.colorFor(uint(len(defaultPalette) + 1)); got != defaultPalette[0] {
		t.Errorf("overflow element color = %q, want %q", got, defaultPalette[0])
	}
	// повторный запрос не сдвигает курсор
	if got := table.colorFor(2); got != defaultPalette[1] {
		t.Errorf("repeat lookup color = %q, want %q", got, defaultPalette[1])
	}
}

func TestClickEventReturnsBookingCopy(t *testing.T) {
	view, _ := calendarForUser(t, &User{ID: 9, Role: "admin"}, bookingsHandler(t, sampleBookings()))
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	booking := view.ClickEvent(2)
	if booking == nil || booking.ID != 2 {
		t.Fatalf("booking = %+v", booking)
	}
	booking.Notes = "scratch"
	if view.Events()[1].Booking.Notes == "scratch" {
		t.Error("ClickEvent returned a reference into the view state")
	}
	if view.ClickEvent(99) != nil {
		t.Error("unknown event id returned a booking")
	}
}

func TestSelectRangePrefillsTimesOnly(t *testing.T) {
	view, _ := calendarForUser(t, &User{ID: 9, Role: "admin"}, bookingsHandler(t, nil))
	start := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	draft := view.SelectRange(start, end)
	if !draft.StartTime.Equal(start) || !draft.EndTime.Equal(end) {
		t.Errorf("times = %v..%v", draft.StartTime, draft.EndTime)
	}
	if draft.ID != 0 || draft.TrainingElementID != 0 {
		t.Errorf("draft carries ids: %+v", draft)
	}
}

func TestEventDropKeepsNewTimesOnSuccess(t *testing.T) {
	bookings := sampleBookings()
	var updates int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			updates++
			var input BookingInput
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				t.Fatalf("decode update: %v", err)
			}
			writeTestJSON(t, w, http.StatusOK, BookingResponse{Message: "Booking updated successfully!"})
			return
		}
		writeTestJSON(t, w, http.StatusOK, bookings)
	})
	view, notify := calendarForUser(t, &User{ID: 9, Role: "admin"}, handler)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	newStart := bookings[0].StartTime.Add(24 * time.Hour)
	newEnd := bookings[0].EndTime.Add(24 * time.Hour)
	if err := view.EventDrop(context.Background(), 1, newStart, newEnd); err != nil {
		t.Fatalf("EventDrop: %v", err)
	}
	if updates != 1 {
		t.Errorf("server saw %d updates, want 1", updates)
	}
	event := view.Events()[0]
	if !event.Start.Equal(newStart) || !event.End.Equal(newEnd) {
		t.Errorf("event times = %v..%v", event.Start, event.End)
	}
	if notify.lastSuccess() != `Booking "Fire Safety" moved successfully!` {
		t.Errorf("success notice = %q", notify.lastSuccess())
	}
}

func TestEventDropRevertsOnFailure(t *testing.T) {
	bookings := sampleBookings()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			writeTestJSON(t, w, http.StatusConflict, map[string]string{"message": "Booking conflict detected"})
			return
		}
		writeTestJSON(t, w, http.StatusOK, bookings)
	})
	view, notify := calendarForUser(t, &User{ID: 9, Role: "admin"}, handler)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	oldStart, oldEnd := view.Events()[0].Start, view.Events()[0].End
	err := view.EventDrop(context.Background(), 1, oldStart.Add(time.Hour), oldEnd.Add(time.Hour))
	if err == nil {
		t.Fatal("EventDrop succeeded against a 409 backend")
	}
	event := view.Events()[0]
	if !event.Start.Equal(oldStart) || !event.End.Equal(oldEnd) {
		t.Errorf("event not reverted: %v..%v", event.Start, event.End)
	}
	if notify.lastError() != "Booking conflict detected" {
		t.Errorf("error notice = %q", notify.lastError())
	}
}

func TestEventDropOmitsUnsetParties(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	bookings := []Booking{
		{ID: 1, TrainingElementID: 1, TrainingElementName: "Fire Safety", StartTime: start, EndTime: start.Add(time.Hour)},
	}
	var body map[string]interface{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode update: %v", err)
			}
			writeTestJSON(t, w, http.StatusOK, BookingResponse{Message: "Booking updated successfully!"})
			return
		}
		writeTestJSON(t, w, http.StatusOK, bookings)
	})
	view, _ := calendarForUser(t, &User{ID: 9, Role: "admin"}, handler)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := view.EventDrop(context.Background(), 1, start.Add(time.Hour), start.Add(2*time.Hour)); err != nil {
		t.Fatalf("EventDrop: %v", err)
	}
	// нулевые участники не должны уходить на сервер как instructor_id: 0
	if _, ok := body["instructor_id"]; ok {
		t.Errorf("payload carries instructor_id for a booking without one: %v", body)
	}
	if _, ok := body["student_id"]; ok {
		t.Errorf("payload carries student_id for a booking without one: %v", body)
	}
	if _, ok := body["training_element_id"]; !ok {
		t.Errorf("payload is missing training_element_id: %v", body)
	}
}

func TestOnSaveSuccessRefetchesBookings(t *testing.T) {
	var fetches int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		writeTestJSON(t, w, http.StatusOK, sampleBookings())
	})
	view, _ := calendarForUser(t, &User{ID: 9, Role: "admin"}, handler)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	view.OnSaveSuccess(context.Background())()
	if fetches != 2 {
		t.Errorf("server saw %d fetches, want 2", fetches)
	}
}
