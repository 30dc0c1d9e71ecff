package middleware

import (
	"net/http"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/edustream/portal_api/services"
	"github.com/edustream/portal_api/shared"
)

type AuthMiddleware struct {
	context.DefaultService

	jwtSvc     *services.JWTService
	sessionSvc *services.SessionService
}

const AUTH_MIDDLEWARE_SVC = "auth"

func (svc AuthMiddleware) Id() string {
	return AUTH_MIDDLEWARE_SVC
}

func (svc *AuthMiddleware) Configure(ctx *context.Context) error {
	svc.jwtSvc = ctx.Service(services.JWT_SVC).(*services.JWTService)
	svc.sessionSvc = ctx.Service(services.SESSION_SVC).(*services.SessionService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthMiddleware) Start() error {
	return nil
}

// RequiredSession admits any request carrying a valid bearer token whose
// session record still exists in the store. The session id and role are
// stashed in locals for the handlers.
func (svc *AuthMiddleware) RequiredSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID, role, err := svc.verifyBearer(c)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		}

		if role == shared.RoleStudent {
			if _, err := svc.sessionSvc.CurrentSession(sessionID); err != nil {
				return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Session expired")
			}
		}

		c.Locals(shared.SessionID, sessionID)
		c.Locals(shared.UserRole, role)
		return c.Next()
	}
}

// RequireAdmin admits only tokens carrying the admin role.
func (svc *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID, role, err := svc.verifyBearer(c)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		}

		if role != shared.RoleAdmin {
			return shared.ResponseJSON(c, http.StatusForbidden, "Forbidden", "Admin access required")
		}

		c.Locals(shared.SessionID, sessionID)
		c.Locals(shared.UserRole, role)
		return c.Next()
	}
}

func (svc *AuthMiddleware) verifyBearer(c *fiber.Ctx) (string, string, error) {
	authHeader := c.Get("Authorization")
	token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return "", "", err
	}

	return svc.jwtSvc.VerifyJWTToken(token)
}
