package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/edustream/portal_api/middleware"
	"github.com/edustream/portal_api/services"
)

// @title EduStream Portal API
// @version 1.0
// @description Lesson catalog, access gate and classroom state for the EduStream portal.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.SqliteService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.JWTService{},

		&services.SessionService{},
		&services.CatalogService{},
		&services.ClassroomService{},
		&services.MediaService{},
		&services.AdminAuthService{},
		&middleware.AuthMiddleware{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
