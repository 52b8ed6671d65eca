package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/workoutapp/backend/internal/config"
	"github.com/workoutapp/backend/internal/db"
	"github.com/workoutapp/backend/internal/handler"
	"github.com/workoutapp/backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	store := db.NewPostgres(pool)

	hasher := service.NewPasswordHasher()
	codec := service.NewTokenCodec()

	userService := service.NewUserService(store, hasher)
	tokenService, err := service.NewTokenService(store, codec, cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("token service init failed")
	}
	workoutService := service.NewWorkoutService(store)

	userHandler := handler.NewUserHandler(userService)
	tokenHandler := handler.NewTokenHandler(tokenService, userService)
	workoutHandler := handler.NewWorkoutHandler(workoutService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestID())
	router.Use(handler.RequestLogger())
	router.Use(handler.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.AllowCredentials))
	router.Use(handler.Authenticate(tokenService, userService))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	router.POST("/users", userHandler.RegisterUser)

	router.POST("/tokens/authentication", tokenHandler.CreateToken)
	router.DELETE("/tokens/authentication", tokenHandler.RevokeTokens)

	router.GET("/workouts/:id", workoutHandler.GetWorkout)
	router.POST("/workouts", workoutHandler.CreateWorkout)
	router.PUT("/workouts/:id", workoutHandler.UpdateWorkout)
	router.DELETE("/workouts/:id", workoutHandler.DeleteWorkout)

	addr := ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("server starting")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
