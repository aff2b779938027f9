package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/jobboard-api/internal/domain/repository"
	"github.com/oksasatya/jobboard-api/pkg/apperror"
	"github.com/oksasatya/jobboard-api/pkg/helpers"
	"github.com/oksasatya/jobboard-api/pkg/mailer"
	mailtpl "github.com/oksasatya/jobboard-api/pkg/mailer/templates"
)

type authFixture struct {
	svc   *AuthService
	users *userRepoMock
	pub   *publisherMock
	mr    *miniredis.Miniredis
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	c, mr := newTestCache(t)
	users := &userRepoMock{}
	pub := &publisherMock{}
	logger := helpers.NewDiscardLogger()
	tokens := NewTokenService(helpers.NewJWTManager(testSecrets, 15*time.Minute), c, logger)
	svc := NewAuthService(users, tokens, c, pub, logger, mailtpl.Brand{AppName: "jobs"}, 0)

	seq := 0
	svc.genCode = func(time.Time) (string, error) {
		seq++
		return fmt.Sprintf("%015d", seq), nil
	}
	t.Cleanup(func() {
		users.AssertExpectations(t)
		pub.AssertExpectations(t)
	})
	return &authFixture{svc: svc, users: users, pub: pub, mr: mr}
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := helpers.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func templateIs(name string) any {
	return mock.MatchedBy(func(job mailer.EmailJob) bool { return job.Template == name })
}

func TestAuthService_RegisterCandidate(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", "ann@acme.test").Return(nil, repo.ErrNotFound).Once()
	f.users.On("Create", mock.AnythingOfType("*entity.User")).Return(nil).Once()
	f.pub.On("PublishJSON", templateIs(mailtpl.Welcome)).Return(nil).Once()

	u, err := f.svc.Register(context.Background(), RegisterInput{
		Email: " Ann@Acme.test ", Password: "secret123", FullName: "Ann", Role: entity.RoleCandidate,
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@acme.test", u.Email)
	assert.True(t, helpers.IsULID(u.UlID))
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "secret123"))
}

func TestAuthService_RegisterRejectsAdmin(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "secret123", Role: entity.RoleAdmin})
	assert.True(t, apperror.Is(err, apperror.Validation))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", "a@b.co").Return(&entity.User{UlID: "U1"}, nil).Once()

	_, err := f.svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "secret123", Role: entity.RoleRecruiter})
	assert.True(t, apperror.Is(err, apperror.Conflict))
}

func TestAuthService_RegisterLosesRace(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", "a@b.co").Return(nil, repo.ErrNotFound).Once()
	f.users.On("Create", mock.Anything).Return(repo.ErrDuplicate).Once()

	_, err := f.svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "secret123", Role: entity.RoleRecruiter})
	assert.True(t, apperror.Is(err, apperror.Conflict))
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	u := &entity.User{UlID: "U1", Email: "a@b.co", Password: mustHash(t, "secret123"), Role: entity.RoleRecruiter}
	f.users.On("GetByEmail", "a@b.co").Return(u, nil)

	res, err := f.svc.Login(context.Background(), "a@b.co", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u, res.User)

	v, err := f.svc.Tokens.Verify(context.Background(), entity.RoleRecruiter, res.Token.Token)
	require.NoError(t, err)
	assert.True(t, v.Valid())

	_, err = f.svc.Login(context.Background(), "a@b.co", "wrong")
	assert.True(t, apperror.Is(err, apperror.Unauthenticated))
}

func TestAuthService_LoginUpgradesWeakHash(t *testing.T) {
	f := newAuthFixture(t)
	weak, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost+1)
	require.NoError(t, err)
	u := &entity.User{UlID: "U1", Email: "a@b.co", Password: string(weak), Role: entity.RoleCandidate}
	f.users.On("GetByEmail", "a@b.co").Return(u, nil).Once()
	f.users.On("UpdatePassword", "U1", mock.MatchedBy(func(h string) bool {
		return helpers.CompareHashAndPassword(h, "secret123") && !helpers.NeedsRehash(h)
	})).Return(nil).Once()

	_, err = f.svc.Login(context.Background(), "a@b.co", "secret123")
	require.NoError(t, err)
	assert.False(t, helpers.NeedsRehash(u.Password))
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", "x@y.z").Return(nil, repo.ErrNotFound).Once()

	_, err := f.svc.Login(context.Background(), "x@y.z", "whatever")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Unauthenticated))
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	tok, err := f.svc.Tokens.Issue(context.Background(), entity.RoleCandidate, "U1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), tok.Token))

	v, err := f.svc.Tokens.Verify(context.Background(), entity.RoleCandidate, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, ReasonRevoked, v.Reason)
}

func TestAuthService_RequestResetUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", "x@y.z").Return(nil, repo.ErrNotFound).Once()

	_, err := f.svc.RequestReset(context.Background(), "x@y.z")
	assert.True(t, apperror.Is(err, apperror.NotFound))
	assert.Empty(t, f.mr.Keys())
}

func TestAuthService_RequestResetReusesLiveCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.users.On("GetByEmail", "a@b.co").Return(&entity.User{UlID: "U1", Email: "a@b.co"}, nil)
	f.pub.On("PublishJSON", templateIs(mailtpl.ResetCode)).Return(nil)

	first, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, first.Reused)
	assert.Len(t, first.Code, helpers.ResetCodeLen)
	assert.Equal(t, 600*time.Second, f.mr.TTL(helpers.KeyResetCode(first.Code)))

	owner, err := f.mr.Get(helpers.KeyResetCode(first.Code))
	require.NoError(t, err)
	assert.Equal(t, "U1", owner)

	f.mr.FastForward(5 * time.Minute)
	second, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Code, second.Code)
	// reuse does not extend the window
	assert.Equal(t, 5*time.Minute, f.mr.TTL(helpers.KeyResetOwner("U1")))

	f.mr.FastForward(6 * time.Minute)
	third, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, third.Reused)
	assert.NotEqual(t, first.Code, third.Code)
}

func TestAuthService_RequestResetPublishFailureIgnored(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", "a@b.co").Return(&entity.User{UlID: "U1", Email: "a@b.co"}, nil).Once()
	f.pub.On("PublishJSON", mock.Anything).Return(errors.New("broker down")).Once()

	_, err := f.svc.RequestReset(context.Background(), "a@b.co")
	assert.NoError(t, err)
}

func TestAuthService_ConfirmResetMismatchTouchesNothing(t *testing.T) {
	f := newAuthFixture(t)
	f.mr.Close()

	err := f.svc.ConfirmReset(context.Background(), "000000000000001", "newpass123", "other12345")
	assert.True(t, apperror.Is(err, apperror.Validation))
	f.users.AssertNotCalled(t, "GetByUlID", mock.Anything)
	f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestAuthService_ConfirmResetUnknownCode(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ConfirmReset(context.Background(), "nope", "newpass123", "newpass123")
	assert.True(t, apperror.Is(err, apperror.LinkExpired))
}

func TestAuthService_ConfirmResetReplacesPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := &entity.User{UlID: "U1", Email: "a@b.co", Password: mustHash(t, "oldpass123"), Role: entity.RoleCandidate}
	f.users.On("GetByEmail", "a@b.co").Return(u, nil)
	f.users.On("GetByUlID", "U1").Return(u, nil).Once()
	f.users.On("UpdatePassword", "U1", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { u.Password = args.String(1) }).
		Return(nil).Once()
	f.pub.On("PublishJSON", mock.Anything).Return(nil)

	ticket, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)

	require.NoError(t, f.svc.ConfirmReset(ctx, ticket.Code, "newpass123", "newpass123"))
	assert.False(t, helpers.CompareHashAndPassword(u.Password, "oldpass123"))
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "newpass123"))

	_, err = f.svc.Login(ctx, "a@b.co", "newpass123")
	require.NoError(t, err)

	// single use
	assert.False(t, f.mr.Exists(helpers.KeyResetCode(ticket.Code)))
	assert.False(t, f.mr.Exists(helpers.KeyResetOwner("U1")))
	err = f.svc.ConfirmReset(ctx, ticket.Code, "again12345", "again12345")
	assert.True(t, apperror.Is(err, apperror.LinkExpired))
}

func TestAuthService_ConfirmResetAfterExpiry(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.users.On("GetByEmail", "a@b.co").Return(&entity.User{UlID: "U1", Email: "a@b.co"}, nil).Once()
	f.pub.On("PublishJSON", mock.Anything).Return(nil).Once()

	ticket, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)
	f.mr.FastForward(601 * time.Second)

	err = f.svc.ConfirmReset(ctx, ticket.Code, "newpass123", "newpass123")
	assert.True(t, apperror.Is(err, apperror.LinkExpired))
}

func TestAuthService_RequestResetRemintsWhenCodeKeyGone(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := &entity.User{UlID: "U1", Email: "a@b.co", Role: entity.RoleCandidate}
	f.users.On("GetByEmail", "a@b.co").Return(u, nil)
	f.users.On("GetByUlID", "U1").Return(u, nil).Once()
	f.users.On("UpdatePassword", "U1", mock.AnythingOfType("string")).Return(nil).Once()
	f.pub.On("PublishJSON", mock.Anything).Return(nil)

	first, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)
	f.mr.Del(helpers.KeyResetCode(first.Code))
	require.True(t, f.mr.Exists(helpers.KeyResetOwner("U1")))

	second, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, second.Reused)
	assert.NotEqual(t, first.Code, second.Code)
	owned, err := f.mr.Get(helpers.KeyResetOwner("U1"))
	require.NoError(t, err)
	assert.Equal(t, second.Code, owned)

	require.NoError(t, f.svc.ConfirmReset(ctx, second.Code, "newpass123", "newpass123"))
}

// delFailCache fails every Del while delegating the rest.
type delFailCache struct{ repo.TokenCache }

func (delFailCache) Del(context.Context, ...string) error { return errors.New("redis down") }

func TestAuthService_ConfirmResetOwnerCleanupFailureStillSucceeds(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := &entity.User{UlID: "U1", Email: "a@b.co", Role: entity.RoleCandidate}
	f.users.On("GetByEmail", "a@b.co").Return(u, nil).Once()
	f.users.On("GetByUlID", "U1").Return(u, nil).Once()
	f.users.On("UpdatePassword", "U1", mock.AnythingOfType("string")).Return(nil).Once()
	f.pub.On("PublishJSON", mock.Anything).Return(nil).Once()

	ticket, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)
	f.svc.Cache = delFailCache{f.svc.Cache}

	require.NoError(t, f.svc.ConfirmReset(ctx, ticket.Code, "newpass123", "newpass123"))
	assert.False(t, f.mr.Exists(helpers.KeyResetCode(ticket.Code)))

	err = f.svc.ConfirmReset(ctx, ticket.Code, "again12345", "again12345")
	assert.True(t, apperror.Is(err, apperror.LinkExpired))
}

func TestAuthService_ConfirmResetConcurrentReplayUpdatesOnce(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := &entity.User{UlID: "U1", Email: "a@b.co", Role: entity.RoleCandidate}
	f.users.On("GetByEmail", "a@b.co").Return(u, nil).Once()
	f.users.On("GetByUlID", "U1").Return(u, nil).Once()
	f.users.On("UpdatePassword", "U1", mock.AnythingOfType("string")).Return(nil).Once()
	f.pub.On("PublishJSON", mock.Anything).Return(nil).Once()

	ticket, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() { errs <- f.svc.ConfirmReset(ctx, ticket.Code, "newpass123", "newpass123") }()
	}
	ok, expired := 0, 0
	for i := 0; i < n; i++ {
		err := <-errs
		switch {
		case err == nil:
			ok++
		case apperror.Is(err, apperror.LinkExpired):
			expired++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, expired)
}

func TestAuthService_ConfirmResetUpdateFailureConsumesCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := &entity.User{UlID: "U1", Email: "a@b.co", Role: entity.RoleCandidate}
	f.users.On("GetByEmail", "a@b.co").Return(u, nil)
	f.users.On("GetByUlID", "U1").Return(u, nil).Once()
	f.users.On("UpdatePassword", "U1", mock.AnythingOfType("string")).Return(errors.New("db down")).Once()
	f.pub.On("PublishJSON", mock.Anything).Return(nil)

	ticket, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)

	require.Error(t, f.svc.ConfirmReset(ctx, ticket.Code, "newpass123", "newpass123"))
	err = f.svc.ConfirmReset(ctx, ticket.Code, "newpass123", "newpass123")
	assert.True(t, apperror.Is(err, apperror.LinkExpired))

	// the stale owner key does not block a fresh code
	next, err := f.svc.RequestReset(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, next.Reused)
	assert.NotEqual(t, ticket.Code, next.Code)
}
