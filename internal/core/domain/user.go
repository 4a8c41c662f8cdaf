package domain

import "time"

const (
	RoleRestaurant = "restaurant"
	RoleNGO        = "ngo"
)

// User models an authenticated actor: a restaurant donating surplus food or
// an NGO collecting it. GSTNumber is set for restaurants, DarpanID for NGOs.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	GSTNumber    string    `json:"gst_number,omitempty"`
	DarpanID     string    `json:"darpan_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleRestaurant || role == RoleNGO
}
