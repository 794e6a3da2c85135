package entity

import "time"

// User usuario de la aplicación (acceso a la API vía JWT).
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
