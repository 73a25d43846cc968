package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lmtavares/todo-notes-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, password string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
}

// UserService provides business logic for accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// getByUsername retrieves a single user by username, including the password hash.
func (s *UserService) getByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT user_id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Register creates a new user, hashing their password. The username must not
// be taken; the lookup gives a clean error and the UNIQUE constraint on the
// table catches the race between two concurrent registrations.
func (s *UserService) Register(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrEmptyCredentials
	}

	if _, err := s.getByUsername(username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO users(username, password_hash) VALUES(?, ?)", username, string(hashedPassword))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return models.User{UserID: int(id), Username: username}, nil
}

// Authenticate verifies a user's credentials. An unknown username and a wrong
// password return the same error.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.getByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
