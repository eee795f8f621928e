package authentication

import (
	"context"
	"net/http"

	"training-booking-app/config"
	"training-booking-app/models"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// RequireLogin пускает дальше только запросы с живой сессией,
// пользователь кладётся в контекст запроса
func RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		ctx := context.WithValue(r.Context(), userContextKey, &user)
		next(w, r.WithContext(ctx))
	}
}

// RequireRoles пускает только перечисленные роли: сначала логин, потом роль
func RequireRoles(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return RequireLogin(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r)
			for _, role := range roles {
				if user != nil && user.Role == role {
					next(w, r)
					return
				}
			}
			writeMessage(w, http.StatusForbidden, "Forbidden: You do not have permission to perform this action.")
		})
	}
}

func UserFromContext(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}
