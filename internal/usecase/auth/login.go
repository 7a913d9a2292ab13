package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user inactive")
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
	Role        string `json:"role"`
}

type LoginUsecase struct {
	finder    UserFinder
	jwtSecret []byte
	expMin    int
}

func NewLoginUsecase(finder UserFinder, jwtSecret string, expiresMinutes int) *LoginUsecase {
	if expiresMinutes <= 0 {
		expiresMinutes = 60
	}
	return &LoginUsecase{
		finder:    finder,
		jwtSecret: []byte(jwtSecret),
		expMin:    expiresMinutes,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.finder.FindByEmail(ctx, email)
	if err != nil {
		// Hide whether email exists
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	exp := now.Add(time.Duration(u.expMin) * time.Minute)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(u.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: signed,
		ExpiresIn:   u.expMin * 60,
		Role:        user.Role,
	}, nil
}
