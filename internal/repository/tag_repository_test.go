package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func TestTagRepository_FindByPool(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery("SELECT .* FROM `tags` WHERE is_public = \\? ORDER BY `order` ASC,id ASC").
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color", "is_public", "order", "created_at"}).
			AddRow(1, "Срочно", "#DC2626", false, 0, time.Now()).
			AddRow(2, "Дубликат", "#6B7280", false, 1, time.Now()))

	tags, err := repo.FindByPool(false)
	if err != nil {
		t.Fatalf("FindByPool() error: %v", err)
	}
	if len(tags) != 2 || tags[0].IsPublic || tags[1].Order != 1 {
		t.Fatalf("unexpected tags: %+v", tags)
	}
	assertExpectations(t, mock)
}

func TestTagRepository_Update_StaysInPool(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tags` SET `name`=\\?,`color`=\\? WHERE id = \\? AND is_public = \\?").
		WithArgs("Очень срочно", "#FF0000", 1, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(&model.Tag{ID: 1, Name: "Очень срочно", Color: "#FF0000", IsPublic: false})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	assertExpectations(t, mock)
}

func TestTagRepository_Delete_ClearsJoinTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `appeal_public_tags` WHERE tag_id = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `tags` WHERE id = \\? AND is_public = \\?").
		WithArgs(3, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(3, true); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	assertExpectations(t, mock)
}

func TestTagRepository_Delete_WrongPool(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `appeal_internal_tags` WHERE tag_id = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `tags` WHERE id = \\? AND is_public = \\?").
		WithArgs(3, false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.Delete(3, false); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got: %v", err)
	}
	assertExpectations(t, mock)
}

func TestTagRepository_FindByIDs_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	tags, err := NewTagRepository(db).FindByIDs(nil, true)
	if err != nil || len(tags) != 0 {
		t.Fatalf("expect empty result without query, got %v %v", tags, err)
	}
	assertExpectations(t, mock)
}
