package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/services/user/internal/models"
	"github.com/musicclouds/platform/services/user/internal/repo"
	"github.com/musicclouds/platform/services/user/internal/transport"
)

type UserService struct {
	Repo repo.GormRepo
}

func (s *UserService) AllUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.AllUsers(ctx)
}

func (s *UserService) UserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "user.delete", "user_id", id)
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrUserNotFound, id)
		}
		l.Error("delete_failed", "error", err)
		return err
	}
	l.Info("user_deleted")
	return nil
}

// UpdateUser applies per-field changes. An update that changes nothing is
// rejected rather than succeeding idempotently; that matches how clients of
// this API already behave.
func (s *UserService) UpdateUser(ctx context.Context, id uint, req transport.UserUpdateRequest) (*models.User, error) {
	user, err := s.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := false

	if req.Email != "" && req.Email != user.Email {
		if !emailRe.MatchString(req.Email) {
			return nil, fmt.Errorf("%w: email is not valid", ErrInvalidRequest)
		}
		taken, err := s.Repo.EmailTaken(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already taken", ErrDuplicateIdentity)
		}
		user.Email = req.Email
		changes = true
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := s.Repo.UsernameTaken(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: username already taken", ErrDuplicateIdentity)
		}
		user.Username = req.Username
		changes = true
	}

	if req.FirstName != "" && req.FirstName != user.FirstName {
		user.FirstName = req.FirstName
		changes = true
	}
	if req.LastName != "" && req.LastName != user.LastName {
		user.LastName = req.LastName
		changes = true
	}

	if !changes {
		return nil, fmt.Errorf("%w: no data changes found", ErrInvalidRequest)
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
