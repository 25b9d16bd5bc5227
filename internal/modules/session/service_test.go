package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vidhub/internal/domain"
	"vidhub/internal/pkg/password"
	"vidhub/internal/pkg/token"
)

// Mock account repository implementing the interface
type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) GetByIdentity(ctx context.Context, identity string) (*domain.Account, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *mockAccountRepo) SetRefreshToken(ctx context.Context, id int64, tok string) error {
	args := m.Called(ctx, id, tok)
	return args.Error(0)
}

func (m *mockAccountRepo) GetRefreshToken(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func newTestIssuer() *token.Issuer {
	return token.NewIssuer("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func testAccount(t *testing.T, plain string) *domain.Account {
	t.Helper()
	hash, err := password.Hash(plain, password.MinCost)
	require.NoError(t, err)
	return &domain.Account{
		ID:           10,
		Username:     "alice",
		Email:        "alice@x.com",
		FullName:     "Alice",
		PasswordHash: hash,
		AvatarURL:    "https://media.test/media/a.png",
	}
}

func TestService_Login_Success(t *testing.T) {
	repo := new(mockAccountRepo)
	iss := newTestIssuer()
	acc := testAccount(t, "pw123")

	repo.On("GetByIdentity", mock.Anything, "alice").Return(acc, nil)
	repo.On("SetRefreshToken", mock.Anything, int64(10), mock.AnythingOfType("string")).Return(nil)

	service := NewService(repo, iss, password.MinCost)

	got, pair, err := service.Login(context.Background(), LoginRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// sanitized projection: no credential or session material
	assert.Empty(t, got.PasswordHash)
	assert.Empty(t, got.RefreshToken)

	// access token claims decode back to the account id
	claims, err := iss.Verify(pair.AccessToken, token.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(10), claims.AccountID)

	repo.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	repo := new(mockAccountRepo)
	acc := testAccount(t, "pw123")

	repo.On("GetByIdentity", mock.Anything, "alice").Return(acc, nil)

	service := NewService(repo, newTestIssuer(), password.MinCost)

	_, _, err := service.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrongpw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownAccount(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("GetByIdentity", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, newTestIssuer(), password.MinCost)

	_, _, err := service.Login(context.Background(), LoginRequest{Email: "nobody@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestService_Refresh_RotatesToken(t *testing.T) {
	repo := new(mockAccountRepo)
	iss := newTestIssuer()
	service := NewService(repo, iss, password.MinCost)

	current, err := iss.IssueRefresh(10)
	require.NoError(t, err)

	repo.On("GetRefreshToken", mock.Anything, int64(10)).Return(current, nil)
	repo.On("SetRefreshToken", mock.Anything, int64(10), mock.AnythingOfType("string")).Return(nil)

	pair, err := service.Refresh(context.Background(), current)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	repo.AssertExpectations(t)
}

func TestService_Refresh_SupersededTokenRejected(t *testing.T) {
	repo := new(mockAccountRepo)
	iss := newTestIssuer()
	service := NewService(repo, iss, password.MinCost)

	old, err := iss.IssueRefresh(10)
	require.NoError(t, err)

	// the store already holds a later token; the presented one no longer matches
	repo.On("GetRefreshToken", mock.Anything, int64(10)).Return("some-newer-token", nil)

	_, err = service.Refresh(context.Background(), old)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	repo.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Refresh_AfterLogout(t *testing.T) {
	repo := new(mockAccountRepo)
	iss := newTestIssuer()
	service := NewService(repo, iss, password.MinCost)

	raw, err := iss.IssueRefresh(10)
	require.NoError(t, err)

	repo.On("GetRefreshToken", mock.Anything, int64(10)).Return("", nil)

	_, err = service.Refresh(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_BadToken(t *testing.T) {
	service := NewService(new(mockAccountRepo), newTestIssuer(), password.MinCost)

	_, err := service.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_AccessTokenIsNotARefreshToken(t *testing.T) {
	iss := newTestIssuer()
	service := NewService(new(mockAccountRepo), iss, password.MinCost)

	access, err := iss.IssueAccess(10)
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Logout_ClearsStoredToken(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("SetRefreshToken", mock.Anything, int64(10), "").Return(nil)

	service := NewService(repo, newTestIssuer(), password.MinCost)

	require.NoError(t, service.Logout(context.Background(), 10))
	repo.AssertExpectations(t)
}

func TestService_ChangePassword_Success(t *testing.T) {
	repo := new(mockAccountRepo)
	acc := testAccount(t, "oldpw")

	repo.On("GetByID", mock.Anything, int64(10)).Return(acc, nil)
	repo.On("UpdatePasswordHash", mock.Anything, int64(10), mock.MatchedBy(func(hash string) bool {
		return hash != "newpw" && password.Verify("newpw", hash)
	})).Return(nil)

	service := NewService(repo, newTestIssuer(), password.MinCost)

	require.NoError(t, service.ChangePassword(context.Background(), 10, "oldpw", "newpw"))
	repo.AssertExpectations(t)
}

func TestService_ChangePassword_WrongOld(t *testing.T) {
	repo := new(mockAccountRepo)
	acc := testAccount(t, "oldpw")

	repo.On("GetByID", mock.Anything, int64(10)).Return(acc, nil)

	service := NewService(repo, newTestIssuer(), password.MinCost)

	err := service.ChangePassword(context.Background(), 10, "nope", "newpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ChangePassword_EmptyNew(t *testing.T) {
	repo := new(mockAccountRepo)
	acc := testAccount(t, "oldpw")
	repo.On("GetByID", mock.Anything, int64(10)).Return(acc, nil)

	service := NewService(repo, newTestIssuer(), password.MinCost)

	err := service.ChangePassword(context.Background(), 10, "oldpw", "")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}
