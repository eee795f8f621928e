package authentication

import (
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"training-booking-app/config"
	"training-booking-app/models"
)

const SessionName = "training-booking-session"

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// Register: регистрация с паролем и выбором роли
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if !models.ValidRole(req.Role) {
		writeMessage(w, http.StatusBadRequest, "Invalid role. Allowed roles: admin, instructor, student")
		return
	}

	// Проверка на существование пользователя с таким email
	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		writeMessage(w, http.StatusConflict, "Email already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Printf("Ошибка при создании пользователя: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	// Сразу открываем сессию для нового пользователя
	if err := saveUserSession(w, r, user.ID); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error creating session")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully!",
		User:    user,
	})
}

// Login: вход с паролем, сессионная кука
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := saveUserSession(w, r, user.ID); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error creating session")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful!",
		User:    user,
	})
}

// Logout: завершение сеанса
func Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := config.Store.Get(r, SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Error clearing session")
		return
	}
	writeMessage(w, http.StatusOK, "Logout successful!")
}

// CurrentUser: пользователь текущей сессии, 401 если сессии нет
func CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized: Login required.")
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized: Login required.")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func saveUserSession(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := config.Store.Get(r, SessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

func sessionUserID(r *http.Request) (uint, bool) {
	session, err := config.Store.Get(r, SessionName)
	if err != nil {
		return 0, false
	}
	userID, ok := session.Values["user_id"].(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}
