package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	dbadapter "rasana/internal/adapters/database"
	"rasana/internal/adapters/httpapi"
	"rasana/internal/adapters/plugin"
	redisadapter "rasana/internal/adapters/redis"
	"rasana/internal/config"
	commentEntity "rasana/internal/core/comment"
	"rasana/internal/core/content"
	feedapp "rasana/internal/core/feed/service"
	geotagEntity "rasana/internal/core/geotag"
	groupEntity "rasana/internal/core/group"
	hashtagEntity "rasana/internal/core/hashtag"
	interactionEntity "rasana/internal/core/interaction"
	interactionapp "rasana/internal/core/interaction/service"
	"rasana/internal/core/invalidation"
	postEntity "rasana/internal/core/post"
	postapp "rasana/internal/core/post/service"
	primaryapp "rasana/internal/core/primary/service"
	userEntity "rasana/internal/core/user"
	userapp "rasana/internal/core/user/service"
	"rasana/internal/workers"
)

func main() {
	config.InitLogger()
	snap := config.Load()

	config.InitDB()

	if err := config.DB.AutoMigrate(
		&userEntity.User{},
		&groupEntity.Group{},
		&hashtagEntity.Hashtag{},
		&geotagEntity.Geotag{},
		&postEntity.Post{},
		&postEntity.HashtagUsage{},
		&postEntity.FileUsage{},
		&postEntity.ExtendUsage{},
		&commentEntity.Comment{},
		&interactionEntity.BlockRelation{},
		&interactionEntity.FollowRelation{},
		&invalidation.Event{},
	); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis()
	defer closeResources(config.Logger)

	// Outbound adapters.
	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(config.DB)
	primaryRepo := dbadapter.NewPrimaryRepositoryDatabase(config.DB)
	interactionRepo := dbadapter.NewInteractionRepositoryDatabase(config.DB)
	invalidationRepo := dbadapter.NewInvalidationRepositoryDatabase(config.DB)
	taggedCache := redisadapter.NewCacheRepositoryRedis(config.RedisClient)
	provider := plugin.NewProviderHTTP(snap.ProviderBaseURL)

	// Application services.
	userSvc := userapp.NewUserService(userRepo, []byte(snap.JWTSecret))
	interactionSvc := interactionapp.NewInteractionService(interactionRepo, groupRepo, invalidationRepo)
	expanderSvc := primaryapp.NewExpanderService(primaryRepo, groupRepo, interactionRepo, taggedCache, snap.ExpanderCacheTTL)
	permissionSvc := content.NewPermissionService(groupRepo, interactionRepo, snap)
	feedSvc := feedapp.NewFeedService(snap, interactionSvc, expanderSvc, permissionSvc, postRepo, commentRepo, primaryRepo, taggedCache, config.Logger)
	postSvc := postapp.NewPostService(postRepo, commentRepo, primaryRepo, invalidationRepo, config.Logger)

	r := httpapi.SetupRoutes(snap, userSvc, feedSvc, postSvc, interactionSvc, expanderSvc, provider)

	worker := workers.NewInvalidationWorker(invalidationRepo, taggedCache, 100, time.Second, config.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	config.Logger.Info("App is running...")
	if err := r.Run(":" + port); err != nil {
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
