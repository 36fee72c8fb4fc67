package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"topspot/internal/adapter/persistence/memory"
	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"
	mock_interfaces "topspot/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type userFixture struct {
	uc       *UserUseCase
	store    *memory.Store
	creds    *mock_interfaces.MockICredentialService
	notifier *mock_interfaces.MockINotifier
}

func newUserFixture(t *testing.T) userFixture {
	ctrl := gomock.NewController(t)
	f := userFixture{
		store:    memory.NewStore(),
		creds:    mock_interfaces.NewMockICredentialService(ctrl),
		notifier: mock_interfaces.NewMockINotifier(ctrl),
	}
	f.creds.EXPECT().HashPassword(gomock.Any()).DoAndReturn(func(p string) (string, error) { return "hash:" + p, nil }).AnyTimes()
	f.creds.EXPECT().ComparePassword(gomock.Any(), gomock.Any()).DoAndReturn(func(hash, p string) error {
		if hash != "hash:"+p {
			return errors.New("mismatch")
		}
		return nil
	}).AnyTimes()
	f.uc = NewUserUseCase(f.store.Users(), f.creds, nil, f.notifier, UserSettings{APIBaseURL: "http://api.test"}, nil)
	return f
}

func ownerSignUp() SignUpInput {
	return SignUpInput{Email: "Owner@Example.com", Password: "secret", FirstName: "Ana", LastName: "Cruz", Role: entities.RoleOwner}
}

func TestUserUseCase_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		f := newUserFixture(t)
		cases := map[string]func(*SignUpInput){
			"email":    func(in *SignUpInput) { in.Email = "not-an-email" },
			"password": func(in *SignUpInput) { in.Password = "1234" },
			"admin":    func(in *SignUpInput) { in.Role = entities.RoleAdmin },
			"tenant":   func(in *SignUpInput) { in.Role = entities.RoleTenant },
		}
		for name, mutate := range cases {
			in := ownerSignUp()
			mutate(&in)
			if _, err := f.uc.SignUp(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("%s: expected invalid input, got %v", name, err)
			}
		}
	})

	t.Run("stores token on the user and emails it", func(t *testing.T) {
		f := newUserFixture(t)
		f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n interfaces.Notification) error {
			if len(n.To) != 1 || n.To[0] != "owner@example.com" {
				t.Fatalf("unexpected recipients: %v", n.To)
			}
			return nil
		})

		u, err := f.uc.SignUp(ctx, ownerSignUp())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Email != "owner@example.com" || u.Verified || u.AdminVerified || u.PasswordHash != "hash:secret" {
			t.Fatalf("unexpected user: %+v", u)
		}
		if u.VerificationToken == "" || !u.VerificationExpiresAt.After(time.Now()) {
			t.Fatalf("expected verification token with expiry: %+v", u)
		}
		if _, err := f.uc.SignUp(ctx, ownerSignUp()); !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("tenant id derived and unique", func(t *testing.T) {
		f := newUserFixture(t)
		f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		in := SignUpInput{Email: "t1@example.com", Password: "secret", FirstName: "T", LastName: "One", Role: entities.RoleTenant, LodgeName: "Sunny Lodge", RoomNumber: "12 B"}
		u, err := f.uc.SignUp(ctx, in)
		if err != nil || u.TenantID != "sunnylodge12b" {
			t.Fatalf("unexpected: %+v %v", u, err)
		}
		in.Email = "t2@example.com"
		if _, err := f.uc.SignUp(ctx, in); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestUserUseCase_VerifyAndSignIn(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	u, err := f.uc.SignUp(ctx, ownerSignUp())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := f.uc.SignIn(ctx, "owner@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.uc.SignIn(ctx, "owner@example.com", "secret"); !errors.Is(err, ErrAccountNotVerified) {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}

	// Signing in while unverified rotated the token.
	stored, _ := f.store.Users().GetByID(ctx, u.ID)
	if stored.VerificationToken == u.VerificationToken {
		t.Fatalf("expected a fresh verification token")
	}
	if _, err := f.uc.VerifyAccount(ctx, u.ID, u.VerificationToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected stale token rejected, got %v", err)
	}
	if _, err := f.uc.VerifyAccount(ctx, u.ID, stored.VerificationToken); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if _, err := f.uc.SignIn(ctx, "owner@example.com", "secret"); !errors.Is(err, ErrAccountPendingApproval) {
		t.Fatalf("expected ErrAccountPendingApproval, got %v", err)
	}

	admin := entities.User{ID: "admin", Role: entities.RoleAdmin}
	if _, err := f.uc.VerifyUser(ctx, admin, u.ID); err != nil {
		t.Fatalf("admin verify: %v", err)
	}

	f.creds.EXPECT().IssueSession(gomock.Any()).Return("token-1", time.Now().Add(time.Hour), nil)
	session, err := f.uc.SignIn(ctx, "OWNER@example.com ", "secret")
	if err != nil || session.Token != "token-1" || session.User.ID != u.ID {
		t.Fatalf("unexpected session: %+v %v", session, err)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)
	user := entities.User{ID: "u-1", Email: "u@example.com", Role: entities.RoleOwner, Verified: true, AdminVerified: true, SessionVersion: 2}
	_, _ = f.store.Users().Create(ctx, user)

	t.Run("bad token", func(t *testing.T) {
		f.creds.EXPECT().ParseSession("bad").Return(interfaces.SessionClaims{}, errors.New("signature"))
		if _, err := f.uc.Authenticate(ctx, "bad"); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected unauthenticated, got %v", err)
		}
	})

	t.Run("revoked session", func(t *testing.T) {
		f.creds.EXPECT().ParseSession("old").Return(interfaces.SessionClaims{UserID: "u-1", Version: 1}, nil)
		if _, err := f.uc.Authenticate(ctx, "old"); !errors.Is(err, ErrSessionInvalid) {
			t.Fatalf("expected ErrSessionInvalid, got %v", err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		f.creds.EXPECT().ParseSession("ok").Return(interfaces.SessionClaims{UserID: "u-1", Version: 2}, nil)
		got, err := f.uc.Authenticate(ctx, "ok")
		if err != nil || got.ID != "u-1" {
			t.Fatalf("unexpected: %+v %v", got, err)
		}
	})

	t.Run("sign out revokes", func(t *testing.T) {
		if err := f.uc.SignOut(ctx, user); err != nil {
			t.Fatalf("signout: %v", err)
		}
		f.creds.EXPECT().ParseSession("ok").Return(interfaces.SessionClaims{UserID: "u-1", Version: 2}, nil)
		if _, err := f.uc.Authenticate(ctx, "ok"); !errors.Is(err, ErrSessionInvalid) {
			t.Fatalf("expected ErrSessionInvalid after sign out, got %v", err)
		}
	})
}

func TestUserUseCase_PasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)
	user := entities.User{ID: "u-1", Email: "u@example.com", Role: entities.RoleOwner, Verified: true, AdminVerified: true, PasswordHash: "hash:old"}
	_, _ = f.store.Users().Create(ctx, user)

	if err := f.uc.RequestPasswordReset(ctx, "nobody@example.com"); err != nil {
		t.Fatalf("unknown email must be silent, got %v", err)
	}

	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
	if err := f.uc.RequestPasswordReset(ctx, "u@example.com"); err != nil {
		t.Fatalf("notification failure must not fail the request, got %v", err)
	}
	stored, _ := f.store.Users().GetByID(ctx, "u-1")

	if err := f.uc.ResetPassword(ctx, "u-1", "wrong", "newpass"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if err := f.uc.ResetPassword(ctx, "u-1", stored.ResetToken, "newpass"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	after, _ := f.store.Users().GetByID(ctx, "u-1")
	if after.PasswordHash != "hash:newpass" || after.ResetToken != "" || after.SessionVersion != 1 {
		t.Fatalf("unexpected user after reset: %+v", after)
	}
	if err := f.uc.ResetPassword(ctx, "u-1", stored.ResetToken, "again1"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected used token rejected, got %v", err)
	}
}

func TestUserUseCase_AdminOperations(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)
	admin := entities.User{ID: "admin", Role: entities.RoleAdmin}
	contractor := entities.User{ID: "c-1", Email: "c@example.com", Role: entities.RoleContractor, ContractorStatus: entities.ContractorPending}
	tenant := entities.User{ID: "t-1", Email: "t@example.com", Role: entities.RoleTenant}
	_, _ = f.store.Users().Create(ctx, contractor)
	_, _ = f.store.Users().Create(ctx, tenant)

	if _, err := f.uc.SetContractorStatus(ctx, tenant, contractor.ID, entities.ContractorActive); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
	got, err := f.uc.SetContractorStatus(ctx, admin, contractor.ID, entities.ContractorActive)
	if err != nil || got.ContractorStatus != entities.ContractorActive {
		t.Fatalf("unexpected: %+v %v", got, err)
	}
	if _, err := f.uc.SetContractorStatus(ctx, admin, tenant.ID, entities.ContractorActive); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	promoted, err := f.uc.ChangeOwnerRole(ctx, admin, tenant.ID, entities.RoleOwner)
	if err != nil || promoted.Role != entities.RoleOwner {
		t.Fatalf("unexpected: %+v %v", promoted, err)
	}
	if _, err := f.uc.ChangeOwnerRole(ctx, admin, contractor.ID, entities.RoleOwner); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	contractors, err := f.uc.ListContractors(ctx, admin)
	if err != nil || len(contractors) != 1 {
		t.Fatalf("unexpected: %v %v", contractors, err)
	}
	others, err := f.uc.ListTenantsAndOwners(ctx, admin)
	if err != nil || len(others) != 1 {
		t.Fatalf("unexpected: %v %v", others, err)
	}
}

func TestUserUseCase_Deactivate(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture(t)
	user := entities.User{ID: "u-1", Email: "u@example.com", Role: entities.RoleOwner, Verified: true, AdminVerified: true}
	_, _ = f.store.Users().Create(ctx, user)

	if err := f.uc.Deactivate(ctx, user); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	after, _ := f.store.Users().GetByID(ctx, "u-1")
	if after.ID == "" || after.Verified || after.CanAuthenticate() {
		t.Fatalf("expected soft deleted user, got %+v", after)
	}
}

func TestUserUseCase_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates once", func(t *testing.T) {
		f := newUserFixture(t)
		first, err := f.uc.EnsureAdmin(ctx, "Root@Example.com", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Role != entities.RoleAdmin || !first.CanAuthenticate() {
			t.Fatalf("expected usable admin, got %+v", first)
		}
		again, err := f.uc.EnsureAdmin(ctx, "root@example.com", "secret")
		if err != nil || again.ID != first.ID {
			t.Fatalf("expected same admin, got %+v (%v)", again, err)
		}
	})

	t.Run("email held by another role", func(t *testing.T) {
		f := newUserFixture(t)
		f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
		if _, err := f.uc.SignUp(ctx, ownerSignUp()); err != nil {
			t.Fatalf("sign up: %v", err)
		}
		if _, err := f.uc.EnsureAdmin(ctx, "owner@example.com", "secret"); !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}
