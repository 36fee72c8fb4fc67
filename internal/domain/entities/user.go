package entities

import "time"

type Role string

const (
	RoleOwner      Role = "owner"
	RoleTenant     Role = "tenant"
	RoleContractor Role = "contractor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleTenant, RoleContractor, RoleAdmin:
		return true
	}
	return false
}

// PostsServices reports whether the role may request work (owner, tenant).
func (r Role) PostsServices() bool {
	return r == RoleOwner || r == RoleTenant
}

type ContractorStatus string

const (
	ContractorPending  ContractorStatus = "pending"
	ContractorActive   ContractorStatus = "active"
	ContractorDisabled ContractorStatus = "disabled"
)

func (s ContractorStatus) Valid() bool {
	switch s {
	case ContractorPending, ContractorActive, ContractorDisabled:
		return true
	}
	return false
}

// User is an account of any role.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (email-index): email
//
// Verification and reset tokens live on the record with their own expiry;
// SessionVersion is embedded in issued sessions so a bump revokes them.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ServiceArea string `json:"service_area"`
	AvatarURL   string `json:"avatar_url"`

	Role             Role             `json:"role"`
	Verified         bool             `json:"verified"`
	AdminVerified    bool             `json:"admin_verified"`
	ContractorStatus ContractorStatus `json:"contractor_status,omitempty"`

	// Tenant fields.
	LodgeName  string `json:"lodge_name,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
	TenantID   string `json:"tenant_id,omitempty"`

	// Contractor fields.
	Categories        []string `json:"categories,omitempty"`
	YearsOfExperience int      `json:"years_of_experience,omitempty"`

	VerificationToken     string    `json:"-"`
	VerificationExpiresAt time.Time `json:"-"`
	ResetToken            string    `json:"-"`
	ResetExpiresAt        time.Time `json:"-"`
	SessionVersion        int64     `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanAuthenticate holds for verified accounts whose role-specific gate is open:
// active contractors and admin-verified owners/tenants.
func (u User) CanAuthenticate() bool {
	if u.ID == "" || !u.Verified {
		return false
	}
	switch u.Role {
	case RoleContractor:
		return u.ContractorStatus == ContractorActive
	case RoleOwner, RoleTenant:
		return u.AdminVerified
	case RoleAdmin:
		return true
	}
	return false
}

func (u User) IsActiveContractor() bool {
	return u.Role == RoleContractor && u.ContractorStatus == ContractorActive
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
