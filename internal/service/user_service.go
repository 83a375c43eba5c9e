package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
	"github.com/NabievDev/NewPeople-sub000/pkg/hash"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/token"

	"gorm.io/gorm"
)

// LoginResult 是登录成功后返回给客户端的数据。
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *model.User `json:"user"`
}

// UserInput 是管理员创建用户的参数。
type UserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UserPatch 是部分更新，nil 表示不修改。
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
	IsActive *bool
}

type UserService interface {
	Login(username, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessToken string) error
	GetProfile(username string) (*model.User, error)

	List() ([]model.User, error)
	Create(input UserInput) (*model.User, error)
	Update(id uint, patch UserPatch) (*model.User, error)
	// Delete 删除用户，actorID 是发起操作的管理员，不能删除自己。
	Delete(actorID, id uint) error
}

type userService struct {
	userRepo   repository.UserRepository
	JWTManager *token.JWTManager
	blacklist  token.Blacklist
}

func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager, blacklist token.Blacklist) UserService {
	return &userService{
		userRepo:   userRepo,
		JWTManager: jwtManager,
		blacklist:  blacklist,
	}
}

func (s *userService) Login(username, password string) (*LoginResult, error) {
	if s.JWTManager == nil {
		return nil, ErrInternal
	}
	// 1. 检查用户是否存在
	existingUser, err := s.userRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 用户不存在，返回统一的凭证错误，防止用户枚举
			return nil, ErrInvalidCredentials
		}
		log.Errorf("Login: failed to query user %q: %v", username, err)
		return nil, ErrInternal
	}
	if existingUser == nil {
		return nil, ErrInvalidCredentials
	}

	// 2. 检查密码是否正确
	if !hash.CheckPasswordHash(password, existingUser.Password) {
		return nil, ErrInvalidCredentials
	}
	if !existingUser.IsActive {
		return nil, ErrUserInactive
	}

	// 3. 生成JWT令牌（使用数据库中的 Username，避免大小写/规范化不一致）
	accessToken, expiresAt, err := s.JWTManager.GenerateToken(existingUser.ID, existingUser.Username, existingUser.Role)
	if err != nil {
		log.Errorf("Login: failed to generate token for user %q: %v", existingUser.Username, err)
		return nil, ErrInternal
	}
	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        existingUser,
	}, nil
}

// Logout 把令牌写入黑名单，有效期与令牌剩余时间一致。
func (s *userService) Logout(ctx context.Context, accessToken string) error {
	if s.JWTManager == nil || s.blacklist == nil {
		return ErrInternal
	}
	claims, err := s.JWTManager.VerifyToken(accessToken)
	if err != nil {
		return ErrInvalidCredentials
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Revoke(ctx, accessToken, ttl); err != nil {
		log.Errorf("Logout: failed to revoke token for user %q: %v", claims.Username, err)
		return ErrInternal
	}
	return nil
}

func (s *userService) GetProfile(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Errorf("GetProfile: failed to query user %q: %v", username, err)
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) List() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func validRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleModerator
}

func (s *userService) Create(input UserInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	role := input.Role
	if role == "" {
		role = model.RoleModerator
	}
	if !validRole(role) {
		return nil, ErrInvalidInput
	}

	if err := s.ensureUnique(0, username, email); err != nil {
		return nil, err
	}

	hashedPassword, err := hash.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, hash.ErrPasswordTooShort) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ensureUnique 检查用户名和邮箱没有被其他用户占用；selfID 为当前用户（更新时跳过自己）。
func (s *userService) ensureUnique(selfID uint, username, email string) error {
	if username != "" {
		existing, err := s.userRepo.FindByUsername(username)
		if err == nil && existing != nil && existing.ID != selfID {
			return ErrUserAlreadyExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if email != "" {
		existing, err := s.userRepo.FindByEmail(email)
		if err == nil && existing != nil && existing.ID != selfID {
			return ErrUserAlreadyExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func (s *userService) findByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Update(id uint, patch UserPatch) (*model.User, error) {
	user, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	var newUsername, newEmail string
	if patch.Username != nil {
		newUsername = strings.TrimSpace(*patch.Username)
		if newUsername == "" {
			return nil, ErrInvalidInput
		}
	}
	if patch.Email != nil {
		newEmail = strings.TrimSpace(*patch.Email)
		if !strings.Contains(newEmail, "@") {
			return nil, ErrInvalidInput
		}
	}
	if err := s.ensureUnique(user.ID, newUsername, newEmail); err != nil {
		return nil, err
	}
	if newUsername != "" {
		user.Username = newUsername
	}
	if newEmail != "" {
		user.Email = newEmail
	}
	if patch.Role != nil {
		if !validRole(*patch.Role) {
			return nil, ErrInvalidInput
		}
		user.Role = *patch.Role
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if patch.Password != nil {
		hashedPassword, err := hash.HashPassword(*patch.Password)
		if err != nil {
			if errors.Is(err, hash.ErrPasswordTooShort) {
				return nil, ErrInvalidInput
			}
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(actorID, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	if actorID == id {
		return ErrCannotDeleteSelf
	}
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
