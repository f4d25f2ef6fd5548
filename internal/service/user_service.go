package service

import (
	"context"
	"errors"

	"github.com/Owenun/Windy/internal/dto"
	"github.com/Owenun/Windy/internal/model"
	"github.com/Owenun/Windy/pkg/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 账户服务
type UserService struct {
	db     *gorm.DB
	tokens *auth.Manager
	logger *zap.SugaredLogger
}

// NewUserService 创建账户服务实例
func NewUserService(db *gorm.DB, tokens *auth.Manager, log *zap.SugaredLogger) *UserService {
	return &UserService{db: db, tokens: tokens, logger: log}
}

// Create 创建用户，密码以bcrypt哈希保存
func (s *UserService) Create(ctx context.Context, username, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}

	// 检查用户名是否已存在
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户登录，用户名或密码错误时返回ErrInvalidCredentials
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("用户登录: id=%d username=%s", user.ID, user.Username)
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: s.tokens.ExpiresIn(),
		User:      UserInfo(user),
	}, nil
}

// GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 根据用户名获取用户
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UserInfo 用户对外展示的信息
func UserInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{ID: user.ID, Username: user.Username, Role: user.Role}
}

// List 用户列表，按ID升序
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ResetPassword 重置用户密码
func (s *UserService) ResetPassword(ctx context.Context, username, password string) error {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(user).Update("password", string(hashedPassword)).Error
}
