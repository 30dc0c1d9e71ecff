package services

import (
	"fmt"
	"os"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/edustream/portal_api/dto"
	"github.com/edustream/portal_api/shared"
)

// AdminAuthService authenticates the single operator account that
// manages the catalog. Credentials come from the environment; the
// password is stored as a bcrypt hash, never in the clear.
type AdminAuthService struct {
	appContext.DefaultService

	jwtSvc *JWTService

	username     string
	passwordHash string
}

const ADMIN_AUTH_SVC = "admin_auth_svc"

func (svc AdminAuthService) Id() string {
	return ADMIN_AUTH_SVC
}

func (svc *AdminAuthService) Configure(ctx *appContext.Context) error {
	svc.username = os.Getenv("ADMIN_USERNAME")
	svc.passwordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	if svc.username == "" || svc.passwordHash == "" {
		log.Warn("Admin credentials not configured, admin endpoints will reject all logins")
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *AdminAuthService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

// Login verifies the operator credentials and issues an admin bearer
// token. The same error is returned for a bad username and a bad
// password.
func (svc *AdminAuthService) Login(req dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if svc.username == "" || svc.passwordHash == "" {
		return nil, shared.NewUnauthorizedError(fmt.Errorf("admin login disabled"), "Invalid credentials")
	}

	if req.Username != svc.username {
		return nil, shared.NewUnauthorizedError(fmt.Errorf("unknown admin user"), "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(svc.passwordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(uuid.New().String(), shared.RoleAdmin)
	if err != nil {
		return nil, err
	}

	log.WithField("username", req.Username).Info("Admin login")

	return &dto.AdminLoginResponse{
		Token:     pair.AccessToken,
		ExpiresIn: pair.ExpiresIn,
	}, nil
}
