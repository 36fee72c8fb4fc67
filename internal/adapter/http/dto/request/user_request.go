package request

import (
	"strings"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase"
)

type SignUpRequest struct {
	Email             string   `json:"email" binding:"required"`
	Password          string   `json:"password" binding:"required"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	ServiceArea       string   `json:"service_area"`
	Role              string   `json:"role" binding:"required"`
	LodgeName         string   `json:"lodge_name"`
	RoomNumber        string   `json:"room_number"`
	Categories        []string `json:"categories"`
	YearsOfExperience int      `json:"years_of_experience"`
}

func (r SignUpRequest) ToInput() usecase.SignUpInput {
	return usecase.SignUpInput{
		Email:             r.Email,
		Password:          r.Password,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Phone:             r.Phone,
		Address:           r.Address,
		ServiceArea:       r.ServiceArea,
		Role:              entities.Role(strings.ToLower(strings.TrimSpace(r.Role))),
		LodgeName:         r.LodgeName,
		RoomNumber:        r.RoomNumber,
		Categories:        r.Categories,
		YearsOfExperience: r.YearsOfExperience,
	}
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type VerifyAccountQuery struct {
	UserID string `form:"user_id" binding:"required"`
	Token  string `form:"token" binding:"required"`
}

type ProfileRequest struct {
	FirstName         *string   `json:"first_name"`
	LastName          *string   `json:"last_name"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	ServiceArea       *string   `json:"service_area"`
	Categories        *[]string `json:"categories"`
	YearsOfExperience *int      `json:"years_of_experience"`
}

func (r ProfileRequest) ToPatch() usecase.ProfilePatch {
	return usecase.ProfilePatch{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Phone:             r.Phone,
		Address:           r.Address,
		ServiceArea:       r.ServiceArea,
		Categories:        r.Categories,
		YearsOfExperience: r.YearsOfExperience,
	}
}

type ContractorStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}
