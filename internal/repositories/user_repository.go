package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"digisanchar/internal/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicatePhone = errors.New("phone number already registered")
	ErrDuplicateToken = errors.New("verification token already in use")
)

type UserRepository interface {
	EnsureSchema() error

	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByEmailOrPhone(email, phone string) (*models.User, error)
	GetByVerificationToken(token string) (*models.User, error)
	Update(user *models.User) error
	UpdateLastLogin(userID int, at time.Time) error
	MarkVerified(userID int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id                    SERIAL PRIMARY KEY,
		first_name            TEXT NOT NULL,
		last_name             TEXT NOT NULL,
		email                 TEXT NOT NULL,
		phone                 TEXT NOT NULL,
		password_hash         TEXT NOT NULL,
		is_verified           BOOLEAN NOT NULL DEFAULT FALSE,
		verification_token    TEXT,
		newsletter_subscribed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login            TIMESTAMPTZ,
		is_active             BOOLEAN NOT NULL DEFAULT TRUE,
		CONSTRAINT users_email_key UNIQUE (email),
		CONSTRAINT users_phone_key UNIQUE (phone),
		CONSTRAINT users_verification_token_key UNIQUE (verification_token)
	)
`

// EnsureSchema creates the users table and its unique constraints on startup.
func (r *userRepository) EnsureSchema() error {
	if _, err := r.DB.Exec(schema); err != nil {
		return fmt.Errorf("users schema: %w", err)
	}
	return nil
}

// translateUnique maps a unique-constraint violation (SQLSTATE 23505) onto
// the duplicate sentinel for the column that collided. Any other error is
// returned as is.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return ErrDuplicateEmail
	case strings.Contains(pqErr.Constraint, "phone"):
		return ErrDuplicatePhone
	case strings.Contains(pqErr.Constraint, "verification_token"):
		return ErrDuplicateToken
	}
	return err
}

const userColumns = `
	id, first_name, last_name, email, phone, password_hash,
	is_verified, verification_token, newsletter_subscribed,
	created_at, last_login, is_active
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		token     sql.NullString
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.IsVerified, &token, &u.NewsletterSubscribed,
		&u.CreatedAt, &lastLogin, &u.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if token.Valid {
		s := token.String
		u.VerificationToken = &s
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			first_name, last_name, email, phone, password_hash,
			is_verified, verification_token, newsletter_subscribed, is_active
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(q,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.IsVerified,
		user.VerificationToken,
		user.NewsletterSubscribed,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return translateUnique(err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	q := `SELECT` + userColumns + `FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	q := `SELECT` + userColumns + `FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(q, email))
}

// GetByEmailOrPhone returns the first user holding either value. Used for the
// pre-insert duplicate check so the caller can name the colliding field.
func (r *userRepository) GetByEmailOrPhone(email, phone string) (*models.User, error) {
	q := `SELECT` + userColumns + `FROM users WHERE email = $1 OR phone = $2 LIMIT 1`
	return scanUser(r.DB.QueryRow(q, email, phone))
}

func (r *userRepository) GetByVerificationToken(token string) (*models.User, error) {
	q := `SELECT` + userColumns + `FROM users WHERE verification_token = $1`
	return scanUser(r.DB.QueryRow(q, token))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET
			first_name=$1,
			last_name=$2,
			email=$3,
			phone=$4,
			password_hash=$5,
			is_verified=$6,
			verification_token=$7,
			newsletter_subscribed=$8,
			last_login=$9,
			is_active=$10
		WHERE id=$11
	`
	_, err := r.DB.Exec(q,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.IsVerified,
		user.VerificationToken,
		user.NewsletterSubscribed,
		user.LastLogin,
		user.IsActive,
		user.ID,
	)
	return translateUnique(err)
}

func (r *userRepository) UpdateLastLogin(userID int, at time.Time) error {
	_, err := r.DB.Exec(`UPDATE users SET last_login=$1 WHERE id=$2`, at, userID)
	return err
}

// MarkVerified flips the verification flag and clears the token so it cannot
// be consumed twice.
func (r *userRepository) MarkVerified(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET is_verified=TRUE, verification_token=NULL
		WHERE id=$1
	`, userID)
	return err
}
