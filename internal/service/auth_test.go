package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/authgate/authgate-go/internal/model"
	"github.com/authgate/authgate-go/internal/repository"
	"github.com/authgate/authgate-go/internal/validation"
)

type fakeUserStore struct {
	users  map[string]*model.User
	nextID int64

	// forceConflict makes Create fail with ErrDuplicateEmail even when
	// the pre-check saw no user, simulating a registration race.
	forceConflict bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if f.forceConflict {
		return repository.ErrDuplicateEmail
	}
	if _, exists := f.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type fakeTokenStore struct {
	tokens map[int64]*model.AccessToken
	nextID int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[int64]*model.AccessToken)}
}

func (f *fakeTokenStore) Create(_ context.Context, token *model.AccessToken) error {
	f.nextID++
	token.ID = f.nextID
	clone := *token
	f.tokens[token.ID] = &clone
	return nil
}

func (f *fakeTokenStore) GetByID(_ context.Context, id int64) (*model.AccessToken, error) {
	token, ok := f.tokens[id]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	clone := *token
	return &clone, nil
}

func newTestService() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	validator := &validation.Registration{
		Policy:      validation.DefaultPasswordPolicy(),
		CheckDomain: func(_ context.Context, _ string) bool { return true },
	}
	return NewAuthService(users, tokens, validator), users, tokens
}

func register(t *testing.T, svc *AuthService) {
	t.Helper()
	err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann Lee",
		Email:    "ann@example.com",
		Password: "Str0ng!Pass",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	svc, users, _ := newTestService()
	register(t, svc)

	if len(users.users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users.users))
	}
	user := users.users["ann@example.com"]
	if user.Name != "Ann Lee" {
		t.Errorf("Name = %q", user.Name)
	}
	if user.PasswordHash == "Str0ng!Pass" || user.PasswordHash == "" {
		t.Error("password was not hashed before persistence")
	}
	if strings.Contains(user.PasswordHash, "Str0ng!Pass") {
		t.Error("plaintext password leaked into the stored hash")
	}
}

func TestRegister_PolicyViolations(t *testing.T) {
	svc, users, _ := newTestService()

	err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann Lee",
		Email:    "ann@example.com",
		Password: "weak",
	})

	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
	if len(errs["password"]) == 0 {
		t.Errorf("expected password violations, got %v", errs)
	}
	if len(users.users) != 0 {
		t.Errorf("no user should be created on validation failure, got %d", len(users.users))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _ := newTestService()
	register(t, svc)

	err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Other Ann",
		Email:    "ann@example.com",
		Password: "An0ther!Pass",
	})

	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
	if len(errs["email"]) != 1 || errs["email"][0] != "The email has already been taken." {
		t.Errorf("unexpected email violations: %v", errs["email"])
	}
	if len(users.users) != 1 {
		t.Errorf("expected 1 user after duplicate attempt, got %d", len(users.users))
	}
}

func TestRegister_DuplicateEmailUnderRace(t *testing.T) {
	svc, users, _ := newTestService()
	users.forceConflict = true

	err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann Lee",
		Email:    "ann@example.com",
		Password: "Str0ng!Pass",
	})

	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("store conflict should surface as validation.Errors, got %v", err)
	}
	if len(errs["email"]) != 1 {
		t.Errorf("expected one email violation, got %v", errs)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc)

	_, errUnknown := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	_, errWrong := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ann@example.com",
		Password: "wrong",
	})

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", errWrong)
	}
	if errUnknown != errWrong {
		t.Error("the two failure cases must be the same error value")
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), model.LoginRequest{})

	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
}

func TestLogin_IssuesDistinctTokens(t *testing.T) {
	svc, _, tokens := newTestService()
	register(t, svc)

	req := model.LoginRequest{Email: "ann@example.com", Password: "Str0ng!Pass"}

	token1, err := svc.Login(context.Background(), req)
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	token2, err := svc.Login(context.Background(), req)
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	if token1 == "" || token2 == "" {
		t.Fatal("Login() returned an empty token")
	}
	if token1 == token2 {
		t.Error("repeated logins must issue distinct tokens")
	}

	for _, stored := range tokens.tokens {
		if stored.Name != TokenName {
			t.Errorf("token label = %q, want %q", stored.Name, TokenName)
		}
		if strings.Contains(token1, stored.TokenHash) || strings.Contains(token2, stored.TokenHash) {
			t.Error("stored digest must not appear in the plaintext token")
		}
	}
}

func TestLogin_NeverIssuesTokenOnFailure(t *testing.T) {
	svc, _, tokens := newTestService()
	register(t, svc)

	svc.Login(context.Background(), model.LoginRequest{Email: "ann@example.com", Password: "wrong"})
	svc.Login(context.Background(), model.LoginRequest{Email: "nobody@example.com", Password: "x"})

	if len(tokens.tokens) != 0 {
		t.Errorf("expected no tokens after failed logins, got %d", len(tokens.tokens))
	}
}

func TestUserFromToken(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc)

	plain, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ann@example.com",
		Password: "Str0ng!Pass",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	user, err := svc.UserFromToken(context.Background(), plain)
	if err != nil {
		t.Fatalf("UserFromToken() unexpected error: %v", err)
	}
	if user.Email != "ann@example.com" {
		t.Errorf("resolved wrong user: %q", user.Email)
	}
}

func TestUserFromToken_Invalid(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc)

	plain, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ann@example.com",
		Password: "Str0ng!Pass",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	tampered := plain[:len(plain)-1] + "X"
	if tampered == plain {
		tampered = plain[:len(plain)-1] + "Y"
	}

	for name, token := range map[string]string{
		"malformed":  "not-a-token",
		"unknown id": "999|abcdefabcdefabcdefabcdefabcdefabcdefabcd",
		"tampered":   tampered,
	} {
		if _, err := svc.UserFromToken(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: got %v, want ErrInvalidToken", name, err)
		}
	}
}
