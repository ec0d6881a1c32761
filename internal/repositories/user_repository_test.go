package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digisanchar/internal/models"
)

func newRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepository(db), mock, db
}

var userCols = []string{
	"id", "first_name", "last_name", "email", "phone", "password_hash",
	"is_verified", "verification_token", "newsletter_subscribed",
	"created_at", "last_login", "is_active",
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	token := "tok123"
	u := &models.User{
		FirstName:         "Asha",
		LastName:          "Kumar",
		Email:             "a@x.com",
		Phone:             "9876543210",
		PasswordHash:      "$2a$10$hash",
		VerificationToken: &token,
		IsActive:          true,
	}

	created := time.Now()
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users`).
		WithArgs("Asha", "Kumar", "a@x.com", "9876543210", "$2a$10$hash",
			false, "tok123", false, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, created))

	require.NoError(t, repo.Create(u))
	assert.Equal(t, 42, u.ID)
	assert.Equal(t, created, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	token := "tok"
	err := repo.Create(&models.User{Email: "a@x.com", VerificationToken: &token})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreate_DuplicatePhone(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_phone_key"})

	err := repo.Create(&models.User{Phone: "9876543210"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
}

func TestCreate_DuplicateVerificationToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_verification_token_key"})

	err := repo.Create(&models.User{})
	assert.ErrorIs(t, err, ErrDuplicateToken)
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	rows := sqlmock.NewRows(userCols).
		AddRow(1, "Asha", "Kumar", "a@x.com", "9876543210", "$2a$10$hash",
			false, "tok123", true, created, nil, true)
	mock.ExpectQuery(`(?s)^\s*SELECT.*FROM users\s+WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	require.NotNil(t, u.VerificationToken)
	assert.Equal(t, "tok123", *u.VerificationToken)
	assert.Nil(t, u.LastLogin)
	assert.True(t, u.NewsletterSubscribed)
	assert.True(t, u.IsActive)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT.*FROM users\s+WHERE email = \$1`).
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail("missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByVerificationToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT.*FROM users\s+WHERE verification_token = \$1`).
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByVerificationToken("gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateLastLogin(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Now()
	mock.ExpectExec(`^UPDATE users SET last_login=\$1 WHERE id=\$2$`).
		WithArgs(at, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastLogin(5, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkVerified_ClearsToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*UPDATE users\s+SET is_verified=TRUE, verification_token=NULL\s+WHERE id=\$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkVerified(5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema())
	assert.NoError(t, mock.ExpectationsWereMet())
}
