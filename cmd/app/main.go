package main

import (
	"context"

	"go.uber.org/zap"

	dbadapter "scriptum/internal/adapters/database"
	"scriptum/internal/adapters/httpapi"
	"scriptum/internal/adapters/httpapi/middleware"
	redisadapter "scriptum/internal/adapters/redis"
	"scriptum/internal/config"
	"scriptum/internal/core/category"
	"scriptum/internal/core/comment"
	commentapp "scriptum/internal/core/comment/service"
	"scriptum/internal/core/location"
	"scriptum/internal/core/post"
	postapp "scriptum/internal/core/post/service"
	"scriptum/internal/core/user"
	userapp "scriptum/internal/core/user/service"
	"scriptum/internal/workers"
)

func main() {
	config.InitLogger()
	config.Init()
	config.InitDB()

	if err := config.DB.AutoMigrate(
		&user.User{},
		&category.Category{},
		&location.Location{},
		&post.Post{},
		&comment.Comment{},
	); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis()
	defer closeResources(config.Logger)

	userRepo := dbadapter.NewUserRepositoryDatabase()
	postRepo := dbadapter.NewPostRepositoryDatabase()
	categoryRepo := dbadapter.NewCategoryRepositoryDatabase()
	locationRepo := dbadapter.NewLocationRepositoryDatabase()
	commentRepo := dbadapter.NewCommentRepositoryDatabase()
	countCache := redisadapter.NewCommentCountCacheRedis(config.RedisClient)

	userSvc := userapp.NewUserService(userRepo, []byte(config.C.JWTSecret), config.C.TokenTTL)
	postSvc := postapp.NewPostService(postRepo, categoryRepo, locationRepo, userRepo, commentRepo, countCache, config.C.PostsPerPage)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, countCache)

	auth := middleware.NewAuth(userRepo)
	r := httpapi.SetupRoutes(userSvc, postSvc, commentSvc, auth)

	countSync := workers.NewCountSyncWorker(
		postRepo, commentRepo, countCache,
		config.C.CountSyncBatch, config.C.CountSyncInterval, config.Logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go countSync.Run(ctx)

	config.Logger.Info("App is running...", zap.String("port", config.C.AppPort))
	if err := r.Run(":" + config.C.AppPort); err != nil {
		config.Logger.Fatal("Server failed to start", zap.Error(err))
	}
}

func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
