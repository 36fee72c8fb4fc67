package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/internal/domain/policy"
	"topspot/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserSettings struct {
	VerifyTTL   time.Duration
	ResetTTL    time.Duration
	MinPassword int
	FrontendURL string
	APIBaseURL  string
}

type SignUpInput struct {
	Email             string
	Password          string
	FirstName         string
	LastName          string
	Phone             string
	Address           string
	ServiceArea       string
	Role              entities.Role
	LodgeName         string
	RoomNumber        string
	Categories        []string
	YearsOfExperience int
}

// ProfilePatch carries the profile fields to change; nil means unchanged.
type ProfilePatch struct {
	FirstName         *string
	LastName          *string
	Phone             *string
	Address           *string
	ServiceArea       *string
	Categories        *[]string
	YearsOfExperience *int
}

type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      entities.User `json:"user"`
}

// IUserUseCase manages accounts and sessions.
type IUserUseCase interface {
	SignUp(ctx context.Context, in SignUpInput) (entities.User, error)
	VerifyAccount(ctx context.Context, userID, token string) (entities.User, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, actor entities.User) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID, token, newPassword string) error
	Authenticate(ctx context.Context, token string) (entities.User, error)
	GetProfile(ctx context.Context, actor entities.User, userID string) (entities.User, error)
	UpdateProfile(ctx context.Context, actor entities.User, patch ProfilePatch) (entities.User, error)
	UpdateAvatar(ctx context.Context, actor entities.User, data []byte) (entities.User, error)
	Deactivate(ctx context.Context, actor entities.User) error
	VerifyUser(ctx context.Context, actor entities.User, userID string) (entities.User, error)
	SetContractorStatus(ctx context.Context, actor entities.User, userID string, status entities.ContractorStatus) (entities.User, error)
	ChangeOwnerRole(ctx context.Context, actor entities.User, userID string, role entities.Role) (entities.User, error)
	ListContractors(ctx context.Context, actor entities.User) ([]entities.User, error)
	ListTenantsAndOwners(ctx context.Context, actor entities.User) ([]entities.User, error)
}

type UserUseCase struct {
	repo     interfaces.IUserRepository
	creds    interfaces.ICredentialService
	media    interfaces.IMediaStore
	notify   notifier
	settings UserSettings
	logger   *zap.Logger
	now      func() time.Time
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(
	repo interfaces.IUserRepository,
	creds interfaces.ICredentialService,
	media interfaces.IMediaStore,
	n interfaces.INotifier,
	settings UserSettings,
	logger *zap.Logger,
) *UserUseCase {
	logger = orNop(logger)
	if settings.VerifyTTL <= 0 {
		settings.VerifyTTL = 24 * time.Hour
	}
	if settings.ResetTTL <= 0 {
		settings.ResetTTL = time.Hour
	}
	if settings.MinPassword <= 0 {
		settings.MinPassword = 5
	}
	return &UserUseCase{
		repo:     repo,
		creds:    creds,
		media:    media,
		notify:   notifier{target: n, users: repo, logger: logger},
		settings: settings,
		logger:   logger,
		now:      utcNow,
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.Invalid("a valid email is required")
	}
	return email, nil
}

// tenantID derives the lodge+room identifier, lower-cased without spaces.
func tenantID(lodge, room string) string {
	return strings.ToLower(strings.Join(strings.Fields(lodge+room), ""))
}

func (u *UserUseCase) SignUp(ctx context.Context, in SignUpInput) (entities.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return entities.User{}, err
	}
	if len(in.Password) < u.settings.MinPassword {
		return entities.User{}, domain.Invalid(fmt.Sprintf("password must be at least %d characters", u.settings.MinPassword))
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return entities.User{}, domain.Invalid("first and last name are required")
	}
	if !in.Role.Valid() || in.Role == entities.RoleAdmin {
		return entities.User{}, domain.Invalid("role must be owner, tenant or contractor")
	}

	existing, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return entities.User{}, ErrEmailTaken
	}

	now := u.now()
	user := entities.User{
		ID:          uuid.NewString(),
		Email:       email,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		ServiceArea: strings.TrimSpace(in.ServiceArea),
		Role:        in.Role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch in.Role {
	case entities.RoleTenant:
		if strings.TrimSpace(in.LodgeName) == "" || strings.TrimSpace(in.RoomNumber) == "" {
			return entities.User{}, domain.Invalid("lodge name and room number are required for tenants")
		}
		user.LodgeName = strings.TrimSpace(in.LodgeName)
		user.RoomNumber = strings.TrimSpace(in.RoomNumber)
		user.TenantID = tenantID(user.LodgeName, user.RoomNumber)
		tenants, err := u.repo.ListByRoles(ctx, entities.RoleTenant)
		if err != nil {
			return entities.User{}, err
		}
		for _, t := range tenants {
			if t.TenantID == user.TenantID {
				return entities.User{}, domain.New(domain.KindConflict, "TENANT_ID_TAKEN", "a tenant is already registered for this lodge and room")
			}
		}
	case entities.RoleContractor:
		if len(in.Categories) > 0 {
			if err := validateCategories(in.Categories); err != nil {
				return entities.User{}, err
			}
		}
		if in.YearsOfExperience < 0 {
			return entities.User{}, domain.Invalid("years of experience cannot be negative")
		}
		user.Categories = in.Categories
		user.YearsOfExperience = in.YearsOfExperience
		user.ContractorStatus = entities.ContractorPending
	}

	if user.PasswordHash, err = u.creds.HashPassword(in.Password); err != nil {
		return entities.User{}, err
	}
	user.VerificationToken = uuid.NewString()
	user.VerificationExpiresAt = now.Add(u.settings.VerifyTTL)

	created, err := u.repo.Create(ctx, user)
	if err != nil {
		return entities.User{}, err
	}
	u.logger.Info("user signed up", zap.String("user_id", created.ID), zap.String("role", string(created.Role)))
	u.sendVerification(ctx, created)
	return created, nil
}

func (u *UserUseCase) sendVerification(ctx context.Context, user entities.User) {
	link := fmt.Sprintf("%s/v1/auth/verify-account?user_id=%s&token=%s",
		strings.TrimRight(u.settings.APIBaseURL, "/"), url.QueryEscape(user.ID), url.QueryEscape(user.VerificationToken))
	u.notify.sendTo(ctx, "Verify your account",
		fmt.Sprintf("Hi %s, confirm your email address: %s", user.FirstName, link),
		user.Email)
}

func tokenMatches(stored, given string, expires, now time.Time) bool {
	if stored == "" || given == "" || now.After(expires) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// EnsureAdmin creates the bootstrap admin account when no user holds the email.
// An existing admin is left untouched.
func (u *UserUseCase) EnsureAdmin(ctx context.Context, email, password string) (entities.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return entities.User{}, err
	}
	if len(password) < u.settings.MinPassword {
		return entities.User{}, domain.Invalid(fmt.Sprintf("password must be at least %d characters", u.settings.MinPassword))
	}
	existing, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		if existing.Role != entities.RoleAdmin {
			return entities.User{}, ErrEmailTaken
		}
		return existing, nil
	}

	now := u.now()
	admin := entities.User{
		ID:            uuid.NewString(),
		Email:         email,
		FirstName:     "TopSpot",
		LastName:      "Admin",
		Role:          entities.RoleAdmin,
		Verified:      true,
		AdminVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if admin.PasswordHash, err = u.creds.HashPassword(password); err != nil {
		return entities.User{}, err
	}
	created, err := u.repo.Create(ctx, admin)
	if err != nil {
		return entities.User{}, err
	}
	u.logger.Info("bootstrap admin created", zap.String("user_id", created.ID))
	return created, nil
}

func (u *UserUseCase) VerifyAccount(ctx context.Context, userID, token string) (entities.User, error) {
	user, err := loadUser(ctx, u.repo, userID)
	if err != nil {
		return entities.User{}, err
	}
	if user.Verified {
		return user, nil
	}
	if !tokenMatches(user.VerificationToken, strings.TrimSpace(token), user.VerificationExpiresAt, u.now()) {
		return entities.User{}, ErrInvalidToken
	}
	user.Verified = true
	user.VerificationToken = ""
	user.VerificationExpiresAt = time.Time{}
	user.UpdatedAt = u.now()
	if user, err = u.repo.Update(ctx, user); err != nil {
		return entities.User{}, err
	}
	u.logger.Info("account verified", zap.String("user_id", user.ID))
	return user, nil
}

func (u *UserUseCase) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if user.ID == "" || user.PasswordHash == "" || u.creds.ComparePassword(user.PasswordHash, password) != nil {
		return Session{}, ErrInvalidCredentials
	}

	if !user.Verified {
		user.VerificationToken = uuid.NewString()
		user.VerificationExpiresAt = u.now().Add(u.settings.VerifyTTL)
		user.UpdatedAt = u.now()
		if _, err := u.repo.Update(ctx, user); err != nil {
			return Session{}, err
		}
		u.sendVerification(ctx, user)
		return Session{}, ErrAccountNotVerified
	}
	switch user.Role {
	case entities.RoleContractor:
		if user.ContractorStatus != entities.ContractorActive {
			return Session{}, ErrAccountNotActive
		}
	case entities.RoleOwner, entities.RoleTenant:
		if !user.AdminVerified {
			return Session{}, ErrAccountPendingApproval
		}
	}
	if !user.CanAuthenticate() {
		return Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := u.creds.IssueSession(user)
	if err != nil {
		return Session{}, err
	}
	u.logger.Info("user signed in", zap.String("user_id", user.ID))
	return Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// SignOut revokes every session issued so far.
func (u *UserUseCase) SignOut(ctx context.Context, actor entities.User) error {
	user, err := loadUser(ctx, u.repo, actor.ID)
	if err != nil {
		return err
	}
	user.SessionVersion++
	user.UpdatedAt = u.now()
	_, err = u.repo.Update(ctx, user)
	return err
}

// RequestPasswordReset is silent about unknown emails.
func (u *UserUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Invalid("email is required")
	}
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ID == "" {
		u.logger.Info("password reset for unknown email")
		return nil
	}
	user.ResetToken = uuid.NewString()
	user.ResetExpiresAt = u.now().Add(u.settings.ResetTTL)
	user.UpdatedAt = u.now()
	if user, err = u.repo.Update(ctx, user); err != nil {
		return err
	}
	link := fmt.Sprintf("%s/reset-password?user_id=%s&token=%s",
		strings.TrimRight(u.settings.FrontendURL, "/"), url.QueryEscape(user.ID), url.QueryEscape(user.ResetToken))
	u.notify.sendTo(ctx, "Reset your password",
		fmt.Sprintf("Use this link to choose a new password: %s", link),
		user.Email)
	return nil
}

func (u *UserUseCase) ResetPassword(ctx context.Context, userID, token, newPassword string) error {
	if len(newPassword) < u.settings.MinPassword {
		return domain.Invalid(fmt.Sprintf("password must be at least %d characters", u.settings.MinPassword))
	}
	user, err := loadUser(ctx, u.repo, userID)
	if err != nil {
		return err
	}
	if !tokenMatches(user.ResetToken, strings.TrimSpace(token), user.ResetExpiresAt, u.now()) {
		return ErrInvalidToken
	}
	if user.PasswordHash, err = u.creds.HashPassword(newPassword); err != nil {
		return err
	}
	user.ResetToken = ""
	user.ResetExpiresAt = time.Time{}
	user.SessionVersion++
	user.UpdatedAt = u.now()
	if _, err := u.repo.Update(ctx, user); err != nil {
		return err
	}
	u.logger.Info("password reset", zap.String("user_id", user.ID))
	return nil
}

// Authenticate resolves a session token to its user. It fails closed.
func (u *UserUseCase) Authenticate(ctx context.Context, token string) (entities.User, error) {
	claims, err := u.creds.ParseSession(strings.TrimSpace(token))
	if err != nil {
		return entities.User{}, ErrSessionInvalid
	}
	user, err := u.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" || user.SessionVersion != claims.Version || !user.CanAuthenticate() {
		return entities.User{}, ErrSessionInvalid
	}
	return user, nil
}

func (u *UserUseCase) GetProfile(ctx context.Context, actor entities.User, userID string) (entities.User, error) {
	if strings.TrimSpace(userID) == "" {
		userID = actor.ID
	}
	user, err := loadUser(ctx, u.repo, userID)
	if err != nil {
		return entities.User{}, err
	}
	if err := policy.Authorize(actor, policy.ActionViewProfile, policy.Target{Subject: &user}); err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (u *UserUseCase) UpdateProfile(ctx context.Context, actor entities.User, patch ProfilePatch) (entities.User, error) {
	user, err := loadUser(ctx, u.repo, actor.ID)
	if err != nil {
		return entities.User{}, err
	}
	set := func(dst *string, v *string, required bool, field string) error {
		if v == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*v)
		if required && trimmed == "" {
			return domain.Invalid(field + " is required")
		}
		*dst = trimmed
		return nil
	}
	if err := set(&user.FirstName, patch.FirstName, true, "first name"); err != nil {
		return entities.User{}, err
	}
	if err := set(&user.LastName, patch.LastName, true, "last name"); err != nil {
		return entities.User{}, err
	}
	_ = set(&user.Phone, patch.Phone, false, "phone")
	_ = set(&user.Address, patch.Address, false, "address")
	_ = set(&user.ServiceArea, patch.ServiceArea, false, "service area")

	if patch.Categories != nil || patch.YearsOfExperience != nil {
		if user.Role != entities.RoleContractor {
			return entities.User{}, domain.Invalid("only contractors have categories and experience")
		}
		if patch.Categories != nil {
			if err := validateCategories(*patch.Categories); err != nil {
				return entities.User{}, err
			}
			user.Categories = *patch.Categories
		}
		if patch.YearsOfExperience != nil {
			if *patch.YearsOfExperience < 0 {
				return entities.User{}, domain.Invalid("years of experience cannot be negative")
			}
			user.YearsOfExperience = *patch.YearsOfExperience
		}
	}
	user.UpdatedAt = u.now()
	return u.repo.Update(ctx, user)
}

func (u *UserUseCase) UpdateAvatar(ctx context.Context, actor entities.User, data []byte) (entities.User, error) {
	if len(data) == 0 {
		return entities.User{}, domain.Invalid("file is required")
	}
	if u.media == nil {
		return entities.User{}, ErrMediaStoreNotConfigured
	}
	user, err := loadUser(ctx, u.repo, actor.ID)
	if err != nil {
		return entities.User{}, err
	}
	avatar, err := u.media.Upload(ctx, "avatars/"+user.ID, data)
	if err != nil {
		u.logger.Error("avatar upload failed", zap.String("user_id", user.ID), zap.Error(err))
		return entities.User{}, err
	}
	user.AvatarURL = avatar
	user.UpdatedAt = u.now()
	return u.repo.Update(ctx, user)
}

// Deactivate is a soft delete: the record stays, sign in stops working.
func (u *UserUseCase) Deactivate(ctx context.Context, actor entities.User) error {
	user, err := loadUser(ctx, u.repo, actor.ID)
	if err != nil {
		return err
	}
	user.Verified = false
	user.SessionVersion++
	user.UpdatedAt = u.now()
	if _, err := u.repo.Update(ctx, user); err != nil {
		return err
	}
	u.logger.Info("account deactivated", zap.String("user_id", user.ID))
	return nil
}

func (u *UserUseCase) VerifyUser(ctx context.Context, actor entities.User, userID string) (entities.User, error) {
	return u.adminUpdate(ctx, actor, policy.ActionVerifyUser, userID, func(user *entities.User) error {
		if !user.Role.PostsServices() {
			return domain.Invalid("only owners and tenants are verified by an admin")
		}
		user.AdminVerified = true
		return nil
	})
}

func (u *UserUseCase) SetContractorStatus(ctx context.Context, actor entities.User, userID string, status entities.ContractorStatus) (entities.User, error) {
	if !status.Valid() {
		return entities.User{}, domain.Invalid("status must be pending, active or disabled")
	}
	user, err := u.adminUpdate(ctx, actor, policy.ActionSetContractorStatus, userID, func(user *entities.User) error {
		if user.Role != entities.RoleContractor {
			return domain.Invalid("user is not a contractor")
		}
		user.ContractorStatus = status
		return nil
	})
	if err != nil {
		return entities.User{}, err
	}
	if status == entities.ContractorActive {
		u.notify.sendTo(ctx, "Your contractor account is active",
			fmt.Sprintf("Hi %s, your account was approved. You can now sign in.", user.FirstName),
			user.Email)
	}
	return user, nil
}

// ChangeOwnerRole moves a user between owner and tenant.
func (u *UserUseCase) ChangeOwnerRole(ctx context.Context, actor entities.User, userID string, role entities.Role) (entities.User, error) {
	if !role.PostsServices() {
		return entities.User{}, domain.Invalid("role must be owner or tenant")
	}
	return u.adminUpdate(ctx, actor, policy.ActionChangeRole, userID, func(user *entities.User) error {
		if !user.Role.PostsServices() {
			return domain.Invalid("only owners and tenants can change role")
		}
		user.Role = role
		return nil
	})
}

func (u *UserUseCase) ListContractors(ctx context.Context, actor entities.User) ([]entities.User, error) {
	if err := policy.Authorize(actor, policy.ActionListUsers, policy.Target{}); err != nil {
		return nil, err
	}
	return u.repo.ListByRoles(ctx, entities.RoleContractor)
}

func (u *UserUseCase) ListTenantsAndOwners(ctx context.Context, actor entities.User) ([]entities.User, error) {
	if err := policy.Authorize(actor, policy.ActionListUsers, policy.Target{}); err != nil {
		return nil, err
	}
	return u.repo.ListByRoles(ctx, entities.RoleTenant, entities.RoleOwner)
}

func (u *UserUseCase) adminUpdate(ctx context.Context, actor entities.User, action policy.Action, userID string, change func(*entities.User) error) (entities.User, error) {
	if err := policy.Authorize(actor, action, policy.Target{}); err != nil {
		return entities.User{}, err
	}
	user, err := loadUser(ctx, u.repo, userID)
	if err != nil {
		return entities.User{}, err
	}
	if err := change(&user); err != nil {
		return entities.User{}, err
	}
	user.UpdatedAt = u.now()
	updated, err := u.repo.Update(ctx, user)
	if err != nil {
		return entities.User{}, err
	}
	u.logger.Info("user updated by admin", zap.String("user_id", updated.ID), zap.String("action", string(action)), zap.String("admin_id", actor.ID))
	return updated, nil
}
