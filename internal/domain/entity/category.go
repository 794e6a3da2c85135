package entity

import "time"

// Límites de validación para Category (alineados con el esquema SQL).
const (
	CategoryNameMin        = 2
	CategoryNameMax        = 50
	CategoryDescriptionMax = 200
)

// Category agrupa productos. El nombre es único en toda la aplicación.
// No puede eliminarse mientras tenga al menos un producto asociado.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}
