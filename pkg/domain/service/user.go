package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"marketplace/pkg/domain/model"
)

var (
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

const minPasswordLength = 8

type UserService interface {
	Register(ctx context.Context, username, plainTextPassword string) (*model.User, error)
	Authenticate(ctx context.Context, username, plainTextPassword string) (*model.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

func NewUserService(uow model.UnitOfWork, passManager model.PasswordManager, dispatcher EventDispatcher) UserService {
	return &userService{
		uow:         uow,
		passManager: passManager,
		dispatcher:  dispatcher,
	}
}

type userService struct {
	uow         model.UnitOfWork
	passManager model.PasswordManager
	dispatcher  EventDispatcher
}

func (s *userService) Register(ctx context.Context, username, plainTextPassword string) (*model.User, error) {
	if username == "" {
		return nil, ErrEmptyName
	}
	if len(plainTextPassword) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := s.passManager.Hash(plainTextPassword)
	if err != nil {
		return nil, err
	}

	var user *model.User
	err = s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		if _, err := r.Users().FindByUsername(ctx, username); err == nil {
			return model.ErrUsernameTaken
		} else if !errors.Is(err, model.ErrUserNotFound) {
			return err
		}

		userID, err := r.Users().NextID()
		if err != nil {
			return err
		}
		user = &model.User{
			ID:             userID,
			Username:       username,
			HashedPassword: hashedPassword,
			CreatedAt:      time.Now().UTC(),
		}
		return r.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.UserRegistered{UserID: user.ID, Username: username})
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username, plainTextPassword string) (*model.User, error) {
	var user *model.User
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		var err error
		user, err = r.Users().FindByUsername(ctx, username)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.passManager.Check(user.HashedPassword, plainTextPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var user *model.User
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		var err error
		user, err = r.Users().Find(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
