package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/identity"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/domain/shared"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID uuid.UUID, isAdmin bool) (IssuedToken, error) {
	args := m.Called(userID, isAdmin)
	return args.Get(0).(IssuedToken), args.Error(1)
}

type MockTokenRevoker struct {
	mock.Mock
}

func (m *MockTokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func authServiceFixture() (*AuthService, *MockUserRepository, *MockTokenIssuer, *MockTokenRevoker) {
	userRepo := new(MockUserRepository)
	issuer := new(MockTokenIssuer)
	revoker := new(MockTokenRevoker)
	svc := NewAuthService(userRepo, issuer, revoker, zap.NewNop())
	return svc, userRepo, issuer, revoker
}

func issuedTokenFixture() IssuedToken {
	return IssuedToken{
		Token:     "signed.jwt.token",
		TokenID:   uuid.NewString(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func userFixture(t *testing.T, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Asha Verma", email, "sprout42")
	require.NoError(t, err)
	return user
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Code
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("registers and logs in", func(t *testing.T) {
		svc, userRepo, issuer, _ := authServiceFixture()

		userRepo.On("ExistsByEmail", mock.Anything, "asha@example.com").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.Email == "asha@example.com" && !u.IsAdmin
		})).Return(nil)
		issuer.On("Issue", mock.Anything, false).Return(issuedTokenFixture(), nil)

		resp, err := svc.Signup(context.Background(), SignupRequest{
			Name:     "Asha Verma",
			Email:    "Asha@Example.com",
			Password: "sprout42",
		})
		require.NoError(t, err)
		assert.Equal(t, "signed.jwt.token", resp.Token)
		assert.Equal(t, "asha@example.com", resp.User.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, userRepo, _, _ := authServiceFixture()

		userRepo.On("ExistsByEmail", mock.Anything, "asha@example.com").Return(true, nil)

		_, err := svc.Signup(context.Background(), SignupRequest{
			Name:     "Asha Verma",
			Email:    "asha@example.com",
			Password: "sprout42",
		})
		assert.Equal(t, "ALREADY_EXISTS", domainCode(t, err))
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		svc, userRepo, _, _ := authServiceFixture()

		userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

		_, err := svc.Signup(context.Background(), SignupRequest{
			Name:     "Asha Verma",
			Email:    "asha@example.com",
			Password: "tiny",
		})
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("valid credentials issue a token", func(t *testing.T) {
		svc, userRepo, issuer, _ := authServiceFixture()
		user := userFixture(t, "asha@example.com")

		userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(user, nil)
		issuer.On("Issue", user.ID, false).Return(issuedTokenFixture(), nil)

		resp, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "sprout42"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		svc, userRepo, _, _ := authServiceFixture()
		user := userFixture(t, "asha@example.com")

		userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(user, nil)
		userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, errWrongPassword := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "wrong"})
		_, errUnknownEmail := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "sprout42"})

		assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, errWrongPassword))
		assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, errUnknownEmail))
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes the token for its remaining lifetime", func(t *testing.T) {
		svc, _, _, revoker := authServiceFixture()

		revoker.On("Revoke", mock.Anything, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > 55*time.Minute && ttl <= time.Hour
		})).Return(nil)

		require.NoError(t, svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour)))
		revoker.AssertExpectations(t)
	})

	t.Run("an already expired token needs no revocation", func(t *testing.T) {
		svc, _, _, revoker := authServiceFixture()

		require.NoError(t, svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)))
		revoker.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_Me(t *testing.T) {
	svc, userRepo, _, _ := authServiceFixture()
	user := userFixture(t, "asha@example.com")

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", resp.Name)
	assert.False(t, resp.IsAdmin)
}
