package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/server/auth"
	"github.com/wbdash/wbdash/internal/server/config"
	"github.com/wbdash/wbdash/internal/server/models"
	"github.com/wbdash/wbdash/internal/server/repositories/repomanager"
)

const maxNicknameLen = 50

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

type RegisterInput struct {
	Nickname string  `json:"nickname"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
}

func (in *RegisterInput) normalize() error {
	in.Nickname = strings.TrimSpace(in.Nickname)
	in.Email = strings.TrimSpace(in.Email)
	if in.Phone != nil {
		p := strings.TrimSpace(*in.Phone)
		if p == "" {
			in.Phone = nil
		} else {
			in.Phone = &p
		}
	}

	for _, f := range [][2]string{{"nickname", in.Nickname}, {"password", in.Password}, {"email", in.Email}} {
		if err := required(f[0], f[1]); err != nil {
			return err
		}
	}
	if len([]rune(in.Nickname)) > maxNicknameLen {
		return fmt.Errorf("%w: nickname is longer than %d characters", common.ErrValidation, maxNicknameLen)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: email is malformed", common.ErrValidation)
	}
	return nil
}

// Register creates an inactive user. Duplicate nicknames and emails surface
// as users.ErrNicknameTaken and users.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Nickname:       in.Nickname,
		Email:          in.Email,
		Phone:          in.Phone,
		HashedPassword: hash,
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

type LoginResult struct {
	User        *models.User
	AccessToken string
}

// Login checks credentials. Unknown users and wrong passwords both yield
// common.ErrorUnauthorized; inactive users yield ErrNotActivated.
func (s *UserService) Login(ctx context.Context, nickname, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users(s.db).GetByNickname(ctx, strings.TrimSpace(nickname))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := auth.CheckPassword(user.HashedPassword, password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	if !user.IsActive {
		return nil, ErrNotActivated
	}

	token, err := auth.GenerateToken(user.ID, user.Nickname, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}

// Profile returns the user together with every account they can access.
func (s *UserService) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lks, err := s.repomanager.WbLks(s.db).ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{User: *user, WbLks: lks}, nil
}
