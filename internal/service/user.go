package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SecondChance/internal/auth"
	"SecondChance/internal/model"
	"SecondChance/internal/repo"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService регистрация пользователей и выпуск токенов.
type UserService struct {
	repo     repo.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewUserService(r repo.UserRepository, secret string, tokenTTL time.Duration) *UserService {
	return &UserService{repo: r, secret: secret, tokenTTL: tokenTTL}
}

// RegisterInput данные формы регистрации.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register создаёт пользователя с bcrypt-хешем пароля и возвращает подписанный токен.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", ErrMissingCredentials
	}

	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		ID:        uuid.NewString(),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		// гонка двух регистраций: проверку прошли оба, уникальный индекс отсёк второго
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := auth.IssueToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
