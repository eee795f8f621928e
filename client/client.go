// Package client реализует клиентскую часть приложения бронирования тренировок:
// типизированный API-клиент, провайдер сессии, защиту маршрутов, календарь
// и редакторы броней и тренировочных элементов.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type TrainingElement struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	SessionType     string `json:"session_type"`
	MaterialLink    string `json:"material_link"`
}

type Booking struct {
	ID                  uint      `json:"id"`
	TrainingElementID   uint      `json:"training_element_id"`
	TrainingElementName string    `json:"training_element_name"`
	InstructorID        uint      `json:"instructor_id"`
	InstructorName      string    `json:"instructor_name"`
	StudentID           uint      `json:"student_id"`
	StudentName         string    `json:"student_name"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes"`
	CreatedByUserID     uint      `json:"created_by_user_id"`
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type TrainingElementInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	SessionType     string `json:"session_type"`
	MaterialLink    string `json:"material_link"`
}

type BookingInput struct {
	TrainingElementID uint      `json:"training_element_id"`
	InstructorID      uint      `json:"instructor_id,omitempty"`
	StudentID         uint      `json:"student_id,omitempty"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Status            string    `json:"status,omitempty"`
	Notes             string    `json:"notes"`
}

type AuthResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TrainingElementResponse struct {
	Message string          `json:"message"`
	Element TrainingElement `json:"element"`
}

type BookingResponse struct {
	Message string  `json:"message"`
	Booking Booking `json:"booking"`
}

// APIError — ошибка уровня API: статус ответа и человекочитаемое сообщение.
// StatusCode == 0 означает, что ответ от сервера не пришёл вовсе.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

const connectivityMessage = "No response from server. Please check your internet connection or server status."

// Client — тонкая обёртка над REST API бэкенда. Сессионные куки
// живут в cookie jar и уходят с каждым запросом.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: connectivityMessage}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: connectivityMessage}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// newAPIError извлекает message из тела ответа, иначе подставляет
// запасное сообщение по классу статуса
func newAPIError(status int, body []byte) *APIError {
	var parsed struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Message
	if message == "" {
		message = parsed.Err
	}
	if message == "" {
		switch status {
		case http.StatusUnauthorized:
			message = "Unauthorized: Login required."
		case http.StatusForbidden:
			message = "Forbidden: You do not have permission to perform this action."
		case http.StatusBadRequest:
			message = "Bad Request: Please check your input."
		case http.StatusConflict:
			message = "Conflict: Resource already exists or conflict occurred."
		default:
			message = "An unexpected error occurred."
		}
	}
	return &APIError{StatusCode: status, Message: message}
}

// --- Auth ---

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser возвращает (nil, nil) на 401: отсутствие сессии —
// штатное состояние, а не ошибка
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/auth/current_user", nil, &user)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// --- Users ---

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// --- Training elements ---

func (c *Client) TrainingElements(ctx context.Context) ([]TrainingElement, error) {
	var elements []TrainingElement
	if err := c.do(ctx, http.MethodGet, "/training_elements", nil, &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

func (c *Client) TrainingElement(ctx context.Context, id uint) (*TrainingElement, error) {
	var element TrainingElement
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/training_elements/%d", id), nil, &element); err != nil {
		return nil, err
	}
	return &element, nil
}

func (c *Client) CreateTrainingElement(ctx context.Context, input TrainingElementInput) (*TrainingElementResponse, error) {
	var resp TrainingElementResponse
	if err := c.do(ctx, http.MethodPost, "/training_elements", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateTrainingElement(ctx context.Context, id uint, input TrainingElementInput) (*TrainingElementResponse, error) {
	var resp TrainingElementResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/training_elements/%d", id), input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteTrainingElement(ctx context.Context, id uint) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/training_elements/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SessionTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.do(ctx, http.MethodGet, "/training_elements/session_types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// --- Bookings ---

func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) Booking(ctx context.Context, id uint) (*Booking, error) {
	var booking Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CreateBooking(ctx context.Context, input BookingInput) (*BookingResponse, error) {
	var resp BookingResponse
	if err := c.do(ctx, http.MethodPost, "/bookings", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id uint, input BookingInput) (*BookingResponse, error) {
	var resp BookingResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bookings/%d", id), input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id uint) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
