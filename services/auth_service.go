package services

import (
	"errors"
	"time"

	"reviewdb-api/auth"
	"reviewdb-api/config"
	"reviewdb-api/models"
	"reviewdb-api/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthService interface {
	SignUp(req models.SignUpRequest) (*models.SignUpResponse, error)
	IssueToken(req models.TokenRequest) (*models.TokenResponse, error)
	GetUserByID(id uint) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	mail     MailService
	codes    *auth.CodeGenerator
	jwtCfg   config.JWTConfig
	log      *logrus.Logger
}

func NewAuthService(userRepo repositories.UserRepository, mail MailService, codes *auth.CodeGenerator, jwtCfg config.JWTConfig, log *logrus.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		mail:     mail,
		codes:    codes,
		jwtCfg:   jwtCfg,
		log:      log,
	}
}

// SignUp branches on username existence: an unknown username creates
// an unconfirmed user, a known one must match its stored email. Both
// branches end with a confirmation code mailed out; no token yet.
func (s *authService) SignUp(req models.SignUpRequest) (*models.SignUpResponse, error) {
	if err := models.ValidateUsername(req.Username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	switch {
	case err == nil:
		if user.Email != req.Email {
			return nil, models.NewValidationError("email", "user with this email does not exist")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		taken, err := s.userRepo.ExistsByEmail(req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewValidationError("email", "user with this email already exists")
		}

		user = &models.User{
			Username: req.Username,
			Email:    req.Email,
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		s.log.WithField("username", user.Username).Info("user registered, pending confirmation")
	default:
		return nil, err
	}

	code := s.codes.MakeCode(user)
	if err := s.mail.SendConfirmationCode(user, code); err != nil {
		return nil, err
	}

	return &models.SignUpResponse{Email: user.Email, Username: user.Username}, nil
}

// IssueToken exchanges a confirmation code for a signed access token.
// A successful exchange stamps confirmed_at, which changes the state
// snapshot the code was derived from and so consumes the code.
func (s *authService) IssueToken(req models.TokenRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	if !s.codes.CheckCode(user, req.ConfirmationCode) {
		return nil, models.NewValidationError("confirmation_code", "invalid confirmation code")
	}

	now := time.Now()
	user.ConfirmedAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user, now)
	if err != nil {
		return nil, err
	}

	s.log.WithField("username", user.Username).Info("access token issued")
	return &models.TokenResponse{Token: token}, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *authService) generateToken(user *models.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.jwtCfg.Expiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtCfg.Secret)
}
