package posts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"postboard/internal/common"
	"postboard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+posts\s*\(id,\s*title,\s*content,\s*author\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`
	mock.ExpectExec(q).
		WithArgs("p-1", "hello", "world", "asdf").
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &models.Post{ID: "p-1", Title: "hello", Content: "world", Author: "asdf"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

const getPostQ = `(?s)^\s*SELECT\s+id,\s*title,\s*content,\s*author,\s*created_at\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1\s*$`

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "content", "author", "created_at"}).
		AddRow("p-1", "hello", "world", "asdf", time.Now())
	mock.ExpectQuery(getPostQ).WithArgs("p-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "p-1" || got.Author != "asdf" {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getPostQ).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*title,\s*content,\s*author,\s*created_at\s+FROM\s+posts\s+ORDER\s+BY\s+created_at\s+DESC\s*$`
	rows := sqlmock.NewRows([]string{"id", "title", "content", "author", "created_at"}).
		AddRow("p-2", "b", "", "fdsa", time.Now()).
		AddRow("p-1", "a", "", "asdf", time.Now())
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(got))
	}
}

func TestUpdate_MatchedCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+posts\s+SET\s+title\s*=\s*\$2,\s*content\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs("p-1", "new title", "new content").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Update(context.Background(), "p-1", "new title", "new content")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 matched row, got %d", n)
	}
}

func TestDelete_DeletedCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 deleted rows, got %d", n)
	}
}
