package userapp

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	"scriptum/internal/core/access"
	"scriptum/internal/core/apperr"
	userEntity "scriptum/internal/core/user"
	userPort "scriptum/internal/ports/user"
)

// UserService handles registration, login and profile editing.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	tokenTTL       time.Duration
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		tokenTTL:       tokenTTL,
	}
}

func toDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{
		ID:        u.ID.String(),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// RegisterUser creates a new account. Usernames are unique.
func (s *UserService) RegisterUser(ctx context.Context, username, firstName, lastName, email, password string) (*userPort.UserDTO, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperr.ErrValidation)
	}

	if existing, err := s.UserRepository.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username already taken", apperr.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &userEntity.User{
		ID:        uuid.Must(uuid.NewV4()),
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashed),
	}

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toDTO(created), nil
}

// LoginUser verifies credentials and issues a signed JWT.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
	}

	expiresAt := time.Now().Add(s.tokenTTL).Unix()
	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		Issuer:    "scriptum",
		ExpiresAt: expiresAt,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetProfile looks a user up by username for profile pages.
func (s *UserService) GetProfile(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toDTO(u), nil
}

// UpdateProfile edits the actor's own record; the target is always the
// actor, never a path parameter.
func (s *UserService) UpdateProfile(ctx context.Context, actor access.Actor, username, firstName, lastName, email string) (*userPort.UserDTO, error) {
	if !actor.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}

	u, err := s.UserRepository.FindByID(ctx, actor.ID.String())
	if err != nil {
		return nil, err
	}

	if username != "" && username != u.Username {
		if existing, err := s.UserRepository.FindByUsername(ctx, username); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: username already taken", apperr.ErrConflict)
		}
		u.Username = username
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Email = email

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return toDTO(u), nil
}
