package services

import (
	"errors"

	"reviewdb-api/models"
	"reviewdb-api/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Create(req models.CreateUserRequest) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List(params models.ListParams) ([]models.User, int64, error)
	Update(user *models.User, req models.UpdateUserRequest, policy models.UserFieldPolicy) error
	Delete(user *models.User) error
}

type userService struct {
	userRepo repositories.UserRepository
	log      *logrus.Logger
}

func NewUserService(userRepo repositories.UserRepository, log *logrus.Logger) UserService {
	return &userService{userRepo: userRepo, log: log}
}

func (s *userService) Create(req models.CreateUserRequest) (*models.User, error) {
	if err := models.ValidateUsername(req.Username); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := models.ValidateRole(role); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("username", "this username is already taken")
	}

	taken, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("email", "user with this email already exists")
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Info("user created")
	return user, nil
}

func (s *userService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(params models.ListParams) ([]models.User, int64, error) {
	return s.userRepo.List(params)
}

// Update applies a partial update through the field policy. A role
// sent through a surface that does not allow it is dropped, not an
// error: a self-service caller cannot escalate by patching role.
func (s *userService) Update(user *models.User, req models.UpdateUserRequest, policy models.UserFieldPolicy) error {
	if req.Username != nil && *req.Username != user.Username {
		if err := models.ValidateUsername(*req.Username); err != nil {
			return err
		}
		taken, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return err
		}
		if taken {
			return models.NewValidationError("username", "this username is already taken")
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(*req.Email)
		if err != nil {
			return err
		}
		if taken {
			return models.NewValidationError("email", "user with this email already exists")
		}
		user.Email = *req.Email
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if req.Role != nil && policy.AllowRole {
		if err := models.ValidateRole(*req.Role); err != nil {
			return err
		}
		user.Role = *req.Role
	}

	return s.userRepo.Update(user)
}

func (s *userService) Delete(user *models.User) error {
	return s.userRepo.Delete(user)
}
