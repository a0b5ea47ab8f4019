package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"gorm.io/gorm"

	"github.com/musicclouds/platform/pkg/events"
	"github.com/musicclouds/platform/pkg/hash"
	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/pkg/tokens"
	"github.com/musicclouds/platform/services/user/internal/domain"
	"github.com/musicclouds/platform/services/user/internal/models"
	"github.com/musicclouds/platform/services/user/internal/repo"
	"github.com/musicclouds/platform/services/user/internal/transport"
)

type FraudChecker interface {
	IsFraudster(ctx context.Context, userID uint) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type AuthService struct {
	Repo  repo.GormRepo
	Codec *tokens.Codec

	// Collaborators of the registration flow. Either may be nil when the
	// service runs without them wired.
	Fraud  FraudChecker
	Events EventPublisher
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`)

func (s *AuthService) Register(ctx context.Context, req transport.RegistrationRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Email == "" || req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email, username and password are required", ErrInvalidRequest)
	}
	if !emailRe.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: email is not valid", ErrInvalidRequest)
	}
	if taken, err := s.Repo.EmailTaken(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: email already taken", ErrDuplicateIdentity)
	}
	if taken, err := s.Repo.UsernameTaken(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: username already taken", ErrDuplicateIdentity)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: pwHash,
		Age:          req.Age,
		Gender:       req.Gender,
		Role:         string(domain.RoleUser),
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("register_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	if s.Fraud != nil {
		fraudster, err := s.Fraud.IsFraudster(ctx, user.ID)
		if err != nil {
			l.Error("register_failed", "reason", "fraud_check_error", "error", err)
			return nil, err
		}
		if fraudster {
			l.Warn("register_rejected", "reason", "fraudster", "user_id", user.ID)
			return nil, ErrFraudulentUser
		}
	}

	if s.Events != nil {
		event := events.NotificationRequest{
			ToUserID:    user.ID,
			ToUserEmail: user.Email,
			Message:     fmt.Sprintf("Hi %s, welcome to musicclouds", user.FirstName),
		}
		key := strconv.FormatUint(uint64(user.ID), 10)
		if err := s.Events.Publish(ctx, key, event); err != nil {
			// Registration stands on its own; the welcome message is lost.
			l.Warn("welcome_notification_not_published", "error", err)
		}
	}

	access, refresh, err := s.mintPair(&user)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RecordToken(ctx, user.ID, access); err != nil {
		l.Error("register_failed", "reason", "token_record_error", "error", err)
		return nil, err
	}

	l.Info("register_successful", "user_id", user.ID)
	return &AuthResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidRequest)
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown identifier")
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch", "user_id", user.ID)
		return nil, ErrAuthenticationFailed
	}

	access, refresh, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.IssueExclusive(ctx, user.ID, access); err != nil {
		l.Error("login_failed", "reason", "token_issue_error", "error", err)
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return &AuthResult{AccessToken: access, RefreshToken: refresh, User: *user}, nil
}

// Refresh mints a new access token for the subject of a verifiable refresh
// token. An unverifiable token or unknown subject yields (nil, nil): the
// handler answers with an empty 200 and reveals nothing. Refresh tokens are
// not rotated; the caller keeps the one it presented.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	subject, err := s.Codec.ExtractSubject(refreshToken, tokens.KindRefresh)
	if err != nil {
		l.Warn("refresh_ignored", "reason", "invalid refresh token")
		return nil, nil
	}

	user, err := s.Repo.UserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh_ignored", "reason", "unknown subject")
			return nil, nil
		}
		return nil, err
	}

	if !s.Codec.Valid(refreshToken, user.Email, tokens.KindRefresh) {
		l.Warn("refresh_ignored", "reason", "invalid refresh token")
		return nil, nil
	}

	access, err := s.Codec.MintAccess(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.IssueExclusive(ctx, user.ID, access); err != nil {
		l.Error("refresh_failed", "reason", "token_issue_error", "error", err)
		return nil, err
	}

	l.Info("refresh_successful", "user_id", user.ID)
	return &AuthResult{AccessToken: access, RefreshToken: refreshToken, User: *user}, nil
}

func (s *AuthService) mintPair(user *models.User) (string, string, error) {
	access, err := s.Codec.MintAccess(user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.Codec.MintRefresh(user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
