package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password", "role", "is_active", "created_at",
	}).AddRow(1, "alice", "alice@example.com", "hashed", "moderator", true, time.Now())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	u := &model.User{Username: "alice", Email: "alice@example.com", Password: "hashed", Role: model.RoleModerator}
	if err := repo.Create(u); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expect generated id 1, got %d", u.ID)
	}
	assertExpectations(t, mock)
}

func TestUserRepository_Create_Nil(t *testing.T) {
	db, _ := newMockDB(t)
	if err := NewUserRepository(db).Create(nil); err == nil {
		t.Fatal("expected error for nil user, got nil")
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT .* FROM `users` WHERE username = \\? ORDER BY .* LIMIT \\?").
		WithArgs("alice", 1).
		WillReturnRows(userRows())

	u, err := repo.FindByUsername("alice")
	if err != nil {
		t.Fatalf("FindByUsername() error: %v", err)
	}
	if u == nil || u.Username != "alice" || !u.IsActive {
		t.Fatalf("unexpected user: %+v", u)
	}
	assertExpectations(t, mock)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT .* FROM `users` WHERE username = \\? ORDER BY .* LIMIT \\?").
		WithArgs("missing", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	u, err := repo.FindByUsername("missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got: %+v", u)
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT .* FROM `users` WHERE .*id.* = \\? ORDER BY .* LIMIT \\?").
		WithArgs(1, 1).
		WillReturnRows(userRows())

	u, err := repo.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if u == nil || u.ID != 1 {
		t.Fatalf("unexpected user: %+v", u)
	}
	assertExpectations(t, mock)
}

func TestUserRepository_Update_ZeroID(t *testing.T) {
	db, _ := newMockDB(t)
	if err := NewUserRepository(db).Update(&model.User{Username: "alice"}); err == nil {
		t.Fatal("expected error for zero ID, got nil")
	}
}

func TestUserRepository_Update_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET .* WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u := &model.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleAdmin, IsActive: true}
	if err := repo.Update(u); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	assertExpectations(t, mock)
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `users` WHERE id = \\?").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.Delete(42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got: %v", err)
	}
	assertExpectations(t, mock)
}

func TestUserRepository_CountByRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE role = \\?").
		WithArgs("moderator").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	n, err := repo.CountByRole(model.RoleModerator)
	if err != nil {
		t.Fatalf("CountByRole() error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expect 3, got %d", n)
	}
	assertExpectations(t, mock)
}
