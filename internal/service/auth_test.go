package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer/wayfarer-go/internal/client"
	"github.com/wayfarer/wayfarer-go/internal/crypto"
	"github.com/wayfarer/wayfarer-go/internal/model"
	"github.com/wayfarer/wayfarer-go/internal/repository"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// userServiceStub plays the user service side of the signup flow.
func userServiceStub(t *testing.T, status int, gotAuth *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/profiles":
			if gotAuth != nil {
				*gotAuth = r.Header.Get("Authorization")
			}
			w.WriteHeader(status)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/profiles/"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"userId":1,"name":"Alice","profilePicture":"p"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func signupRequest() model.SignupRequest {
	return model.SignupRequest{
		Email:    "a@x.com",
		Password: "Passw0rd!",
		Name:     "Alice",
	}
}

func TestRegisterSuccess(t *testing.T) {
	var gotAuth string
	stub := userServiceStub(t, http.StatusCreated, &gotAuth)
	defer stub.Close()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, client.NewProfileClient(stub.URL), testSecret, time.Hour)

	resp, err := svc.Register(context.Background(), signupRequest())
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, 1, repo.count())

	// The downstream call carries a token minted for the new user.
	token, found := strings.CutPrefix(gotAuth, "Bearer ")
	require.True(t, found, "expected bearer token on profile creation, got %q", gotAuth)
	claims, err := crypto.ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterRollsBackOnProfileFailure(t *testing.T) {
	stub := userServiceStub(t, http.StatusInternalServerError, nil)
	defer stub.Close()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, client.NewProfileClient(stub.URL), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), signupRequest())
	assert.ErrorIs(t, err, ErrProfileCreation)

	// Rollback property: the briefly committed credential must be gone.
	assert.Equal(t, 0, repo.count())

	// And a subsequent login with the same email must fail as unknown.
	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "Passw0rd!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRollsBackOnUnreachableUserService(t *testing.T) {
	stub := userServiceStub(t, http.StatusCreated, nil)
	stub.Close() // connection refused from here on

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, client.NewProfileClient(stub.URL), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), signupRequest())
	assert.ErrorIs(t, err, ErrProfileCreation)
	assert.Equal(t, 0, repo.count())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	stub := userServiceStub(t, http.StatusCreated, nil)
	defer stub.Close()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, client.NewProfileClient(stub.URL), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), signupRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, repo.count())
}

func TestRegisterNormalizesEmail(t *testing.T) {
	stub := userServiceStub(t, http.StatusCreated, nil)
	defer stub.Close()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, client.NewProfileClient(stub.URL), testSecret, time.Hour)

	req := signupRequest()
	req.Email = "  Alice@X.Com "
	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", resp.User.Email)

	// A differently-cased duplicate still conflicts.
	req.Email = "ALICE@x.com"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginTokenRoundTrip(t *testing.T) {
	stub := userServiceStub(t, http.StatusCreated, nil)
	defer stub.Close()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, client.NewProfileClient(stub.URL), testSecret, time.Hour)

	registered, err := svc.Register(context.Background(), signupRequest())
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "Passw0rd!"})
	require.NoError(t, err)

	claims, err := crypto.ValidateToken(login.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	user, err := svc.GetUser(context.Background(), claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	stub := userServiceStub(t, http.StatusCreated, nil)
	defer stub.Close()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, client.NewProfileClient(stub.URL), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "nobody@x.com", Password: "Passw0rd!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginProfileEmbedDegrades(t *testing.T) {
	stub := userServiceStub(t, http.StatusCreated, nil)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, client.NewProfileClient(stub.URL), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), signupRequest())
	require.NoError(t, err)

	// User service down: login still succeeds, profile is null.
	stub.Close()
	login, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.Nil(t, login.User.Profile)
}

func TestGetUserMissing(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), client.NewProfileClient("http://127.0.0.1:0"), testSecret, time.Hour)

	_, err := svc.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
