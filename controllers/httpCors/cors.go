package httpCors

import (
	"github.com/rs/cors"
)

// CorsSettings — браузерный клиент живёт на другом origin и шлёт сессионные куки,
// поэтому credentials обязательны, а origin-ы перечисляются явно
func CorsSettings(allowedOrigins []string) *cors.Cors {
	c := cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type"},
	})
	return c
}
