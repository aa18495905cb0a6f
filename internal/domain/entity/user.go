package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User usuario autenticado del dashboard. Las credenciales son fijas (login simulado).
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // admin | staff
}

// SystemUser actor usado por procesos internos (seed, arranque).
var SystemUser = User{ID: "0", Name: "System", Email: "system@inventorypro.local", Role: RoleAdmin}
