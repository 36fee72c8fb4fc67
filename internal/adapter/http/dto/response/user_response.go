package response

import (
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase"
)

// UserResponse never carries password hashes or tokens.
type UserResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Phone             string    `json:"phone,omitempty"`
	Address           string    `json:"address,omitempty"`
	ServiceArea       string    `json:"service_area,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	Role              string    `json:"role"`
	Verified          bool      `json:"verified"`
	AdminVerified     bool      `json:"admin_verified"`
	ContractorStatus  string    `json:"contractor_status,omitempty"`
	LodgeName         string    `json:"lodge_name,omitempty"`
	RoomNumber        string    `json:"room_number,omitempty"`
	TenantID          string    `json:"tenant_id,omitempty"`
	Categories        []string  `json:"categories,omitempty"`
	YearsOfExperience int       `json:"years_of_experience,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Phone:             u.Phone,
		Address:           u.Address,
		ServiceArea:       u.ServiceArea,
		AvatarURL:         u.AvatarURL,
		Role:              string(u.Role),
		Verified:          u.Verified,
		AdminVerified:     u.AdminVerified,
		ContractorStatus:  string(u.ContractorStatus),
		LodgeName:         u.LodgeName,
		RoomNumber:        u.RoomNumber,
		TenantID:          u.TenantID,
		Categories:        u.Categories,
		YearsOfExperience: u.YearsOfExperience,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func FromUsers(users []entities.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

type SessionResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func FromSession(s usecase.Session) SessionResponse {
	return SessionResponse{
		Token:     s.Token,
		TokenType: "Bearer",
		ExpiresAt: s.ExpiresAt,
		User:      FromUser(s.User),
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
