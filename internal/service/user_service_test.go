package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/pkg/hash"
	applog "github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/token"

	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	applog.Init("error", "console", "")
	code := m.Run()
	os.Exit(code)
}

func newJWT() *token.JWTManager {
	return token.NewJWTManager("test-secret", 15*time.Minute)
}

func activeUser(t *testing.T, password string) *model.User {
	t.Helper()
	pwd, err := hash.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	return &model.User{ID: 1, Username: "admin", Email: "admin@example.com", Password: pwd, Role: model.RoleAdmin, IsActive: true}
}

func TestUserService_Login_Success(t *testing.T) {
	jm := newJWT()
	user := activeUser(t, "admin123")
	repo := &fakeUserRepo{
		findByUsernameFn: func(username string) (*model.User, error) {
			return user, nil
		},
	}
	svc := NewUserService(repo, jm, &fakeBlacklist{})

	res, err := svc.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.AccessToken == "" || res.TokenType != "bearer" || res.User.ID != 1 {
		t.Fatalf("unexpected login result: %+v", res)
	}
	claims, err := jm.VerifyToken(res.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.Username != "admin" || claims.Role != model.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUserService_Login_UserNotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, newJWT(), &fakeBlacklist{})

	_, err := svc.Login("no-user", "123456")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expect ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	user := activeUser(t, "correct-password")
	repo := &fakeUserRepo{
		findByUsernameFn: func(username string) (*model.User, error) { return user, nil },
	}
	svc := NewUserService(repo, newJWT(), &fakeBlacklist{})

	if _, err := svc.Login("admin", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expect ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestUserService_Login_Inactive(t *testing.T) {
	user := activeUser(t, "admin123")
	user.IsActive = false
	repo := &fakeUserRepo{
		findByUsernameFn: func(username string) (*model.User, error) { return user, nil },
	}
	svc := NewUserService(repo, newJWT(), &fakeBlacklist{})

	if _, err := svc.Login("admin", "admin123"); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expect ErrUserInactive, got %v", err)
	}
}

func TestUserService_Login_DBError(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsernameFn: func(username string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewUserService(repo, newJWT(), &fakeBlacklist{})

	if _, err := svc.Login("alice", "123456"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expect ErrInternal for DB error, got %v", err)
	}
}

func TestUserService_Login_NilJWTManager(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, nil, &fakeBlacklist{})

	if _, err := svc.Login("alice", "123456"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expect ErrInternal for nil JWTManager, got %v", err)
	}
}

func TestUserService_Logout_RevokesUntilExpiry(t *testing.T) {
	jm := newJWT()
	accessToken, _, err := jm.GenerateToken(1, "admin", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	bl := &fakeBlacklist{}
	svc := NewUserService(&fakeUserRepo{}, jm, bl)

	if err := svc.Logout(context.Background(), accessToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	ttl, ok := bl.revoked[accessToken]
	if !ok {
		t.Fatalf("token was not revoked")
	}
	if ttl <= 0 || ttl > 15*time.Minute {
		t.Fatalf("unexpected blacklist ttl: %v", ttl)
	}
}

func TestUserService_Logout_InvalidToken(t *testing.T) {
	bl := &fakeBlacklist{}
	svc := NewUserService(&fakeUserRepo{}, newJWT(), bl)

	if err := svc.Logout(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expect ErrInvalidCredentials, got %v", err)
	}
	if len(bl.revoked) != 0 {
		t.Fatalf("nothing should be revoked")
	}
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, newJWT(), nil)

	if _, err := svc.GetProfile("no-user"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expect ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetProfile_DBError(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsernameFn: func(username string) (*model.User, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewUserService(repo, newJWT(), nil)

	if _, err := svc.GetProfile("alice"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expect ErrInternal, got %v", err)
	}
}

func TestUserService_Create_DefaultsToModerator(t *testing.T) {
	var saved *model.User
	repo := &fakeUserRepo{
		createFn: func(user *model.User) error {
			user.ID = 7
			saved = user
			return nil
		},
	}
	svc := NewUserService(repo, newJWT(), nil)

	u, err := svc.Create(UserInput{Username: " mod2 ", Email: "mod2@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID != 7 || u.Username != "mod2" || u.Role != model.RoleModerator || !u.IsActive {
		t.Fatalf("unexpected user: %+v", u)
	}
	if saved.Password == "secret1" || !hash.CheckPasswordHash("secret1", saved.Password) {
		t.Fatalf("password is not hashed correctly")
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmailFn: func(email string) (*model.User, error) {
			return &model.User{ID: 3, Email: email}, nil
		},
	}
	svc := NewUserService(repo, newJWT(), nil)

	_, err := svc.Create(UserInput{Username: "new", Email: "taken@example.com", Password: "secret1"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expect ErrUserAlreadyExists, got %v", err)
	}
}

func TestUserService_Create_ShortPassword(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, newJWT(), nil)

	_, err := svc.Create(UserInput{Username: "new", Email: "new@example.com", Password: "123"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expect ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Update_KeepsOwnUsername(t *testing.T) {
	existing := &model.User{ID: 4, Username: "mod", Email: "mod@example.com", Role: model.RoleModerator, IsActive: true}
	var updated *model.User
	repo := &fakeUserRepo{
		findByIDFn:       func(id uint) (*model.User, error) { return existing, nil },
		findByUsernameFn: func(username string) (*model.User, error) { return existing, nil },
		updateFn: func(user *model.User) error {
			updated = user
			return nil
		},
	}
	svc := NewUserService(repo, newJWT(), nil)

	inactive := false
	u, err := svc.Update(4, UserPatch{Username: strPtr("mod"), IsActive: &inactive, Role: strPtr(model.RoleAdmin)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated == nil || u.IsActive || u.Role != model.RoleAdmin {
		t.Fatalf("unexpected update: %+v", u)
	}
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	repo := &fakeUserRepo{
		findByIDFn: func(id uint) (*model.User, error) { return &model.User{ID: id}, nil },
	}
	svc := NewUserService(repo, newJWT(), nil)

	if _, err := svc.Update(4, UserPatch{Role: strPtr("root")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expect ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Delete_Self(t *testing.T) {
	called := false
	repo := &fakeUserRepo{deleteFn: func(id uint) error { called = true; return nil }}
	svc := NewUserService(repo, newJWT(), nil)

	if err := svc.Delete(1, 1); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Fatalf("expect ErrCannotDeleteSelf, got %v", err)
	}
	if called {
		t.Fatalf("repository Delete must not be called")
	}
}

func TestUserService_Delete_NotFoundMapped(t *testing.T) {
	repo := &fakeUserRepo{deleteFn: func(id uint) error { return gorm.ErrRecordNotFound }}
	svc := NewUserService(repo, newJWT(), nil)

	if err := svc.Delete(1, 9); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expect ErrUserNotFound, got %v", err)
	}
}
