package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/docportal/internal/model"
	"github.com/templui/docportal/internal/repository"
	"github.com/templui/docportal/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const (
	BootstrapLogin    = "admin"
	BootstrapPassword = "admin"
)

var ErrInvalidCredentials = errors.New("invalid login or password")

type AuthService struct {
	adminRepository repository.AdminRepository
}

func NewAuthService(adminRepository repository.AdminRepository) *AuthService {
	return &AuthService{
		adminRepository: adminRepository,
	}
}

// Authenticate checks a login and password. Rows with a hash are verified
// with bcrypt; rows that only carry a legacy plaintext password are compared
// in constant time. Any failure yields false.
func (s *AuthService) Authenticate(login, password string) bool {
	admin, err := s.adminRepository.ByLogin(strings.TrimSpace(login))
	if err != nil {
		if !errors.Is(err, repository.ErrAdminNotFound) {
			slog.Error("failed to load admin", "error", err)
		}
		return false
	}

	return s.verify(admin, password)
}

func (s *AuthService) verify(admin *model.Admin, password string) bool {
	if admin.HasPasswordHash() {
		return s.ComparePassword(password, *admin.PasswordHash) == nil
	}
	if admin.HasLegacyPassword() {
		return subtle.ConstantTimeCompare([]byte(password), []byte(*admin.Password)) == 1
	}
	return false
}

// EnsureBootstrapAdmin creates the well-known admin account when it is missing.
// Operators are expected to change its password.
func (s *AuthService) EnsureBootstrapAdmin() error {
	_, err := s.adminRepository.ByLogin(BootstrapLogin)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrAdminNotFound) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	err = s.CreateAdmin(BootstrapLogin, BootstrapPassword)
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	slog.Warn("created bootstrap admin with the default password, change it", "login", BootstrapLogin)
	return nil
}

func (s *AuthService) CreateAdmin(login, password string) error {
	login = strings.TrimSpace(login)
	err := validation.ValidateLogin(login)
	if err != nil {
		return invalidInput(err)
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return invalidInput(err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.adminRepository.Create(&model.Admin{
		Login:        login,
		PasswordHash: &hash,
	})
}

// ChangePassword replaces the password after checking the current one and
// clears any legacy plaintext.
func (s *AuthService) ChangePassword(login, current, next string) error {
	err := validation.ValidatePassword(next)
	if err != nil {
		return invalidInput(err)
	}

	admin, err := s.adminRepository.ByLogin(strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if !s.verify(admin, current) {
		return ErrInvalidCredentials
	}

	hash, err := s.HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.adminRepository.UpdatePasswordHash(admin.ID, hash)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
