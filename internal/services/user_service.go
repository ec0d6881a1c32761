package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"digisanchar/internal/models"
	"digisanchar/internal/repositories"
	"digisanchar/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidVerifyToken = errors.New("invalid verification token")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError carries a user-facing message for malformed registration
// input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type UserService interface {
	Register(req *models.RegisterRequest) (*models.User, error)
	Login(email, password string, remember bool) (*models.User, string, error)
	VerifyEmail(token string) error
	GetProfile(userID int) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	authService  AuthService
	emailService EmailService
}

func NewUserService(repo repositories.UserRepository, authService AuthService, emailService EmailService) UserService {
	return &userService{
		repo:         repo,
		authService:  authService,
		emailService: emailService,
	}
}

// Register validates the request, rejects duplicates, and inserts a new
// unverified account. The verification email is fire-and-forget: a transport
// failure is logged and never fails the registration.
func (s *userService) Register(req *models.RegisterRequest) (*models.User, error) {
	required := []struct{ field, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"phone", req.Phone},
		{"password", req.Password},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, validationErr("%s is required", f.field)
		}
	}

	// Normalize before the shape checks so padded or formatted input is
	// validated in its stored form (email lowercased and trimmed, phone
	// digits only).
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := validation.NormalizePhone(req.Phone)

	if !validation.ValidateEmail(email) {
		return nil, validationErr("Invalid email format")
	}
	if !validation.ValidatePhone(phone) {
		return nil, validationErr("Invalid phone number format")
	}
	if ok, reason := validation.ValidatePassword(req.Password); !ok {
		return nil, &ValidationError{Message: reason}
	}

	// Pre-check so the 409 can name the colliding field. The unique
	// constraints remain authoritative for racing inserts.
	existing, err := s.repo.GetByEmailOrPhone(email, phone)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Email == email {
			return nil, ErrEmailTaken
		}
		return nil, ErrPhoneTaken
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	token, err := s.authService.NewVerificationToken()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:            strings.TrimSpace(req.FirstName),
		LastName:             strings.TrimSpace(req.LastName),
		Email:                email,
		Phone:                phone,
		PasswordHash:         hash,
		VerificationToken:    &token,
		NewsletterSubscribed: req.Newsletter,
		IsActive:             true,
	}

	if err := s.repo.Create(user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repositories.ErrDuplicatePhone):
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendVerificationEmail(user.Email, user.FirstName, token); err != nil {
			log.Printf("[users][register] warning: failed to send verification email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login authenticates by email and password and issues a session token. The
// same ErrInvalidCredentials covers unknown email and wrong password so the
// response cannot reveal which one was wrong.
func (s *userService) Login(email, password string, remember bool) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !s.authService.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrAccountDeactivated
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, "", err
	}
	user.LastLogin = &now

	token, err := s.authService.GenerateToken(user.ID, remember)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyEmail consumes a verification token. The token is cleared on success,
// so a second attempt with the same token fails.
func (s *userService) VerifyEmail(token string) error {
	user, err := s.repo.GetByVerificationToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidVerifyToken
		}
		return err
	}
	return s.repo.MarkVerified(user.ID)
}

func (s *userService) GetProfile(userID int) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
