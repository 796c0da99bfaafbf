package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/techagentng/clubcore/cache"
	"github.com/techagentng/clubcore/config"
	"github.com/techagentng/clubcore/db"
	"github.com/techagentng/clubcore/logger"
	"github.com/techagentng/clubcore/server"
	"github.com/techagentng/clubcore/services"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger.SetLevel(conf.Debug, conf.Env)
	defer logger.Sync()

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	teamRepo := db.NewTeamRepo(gormDB)
	conversationRepo := db.NewConversationRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)
	eventRepo := db.NewEventRepo(gormDB)

	var nameCache cache.Cache
	var redisClient *redis.Client
	if conf.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(context.Background(), conf.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			defer redisCache.Close()
			nameCache = redisCache
			redisClient = redisCache.Client()
		}
	}

	directory := services.NewDirectory(authRepo, nameCache, conf.DisplayNameTTL)
	validator := services.NewAccessValidator(conversationRepo)

	authService := services.NewAuthService(authRepo, teamRepo, conf)
	teamService := services.NewTeamService(authRepo, teamRepo, conf)
	conversationService := services.NewConversationService(conversationRepo, messageRepo, validator, directory, directory, conf)
	messagingService := services.NewMessagingService(conversationRepo, messageRepo, validator, directory, conf)
	eventService := services.NewEventService(eventRepo, authRepo, conf)

	s := &server.Server{
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		TeamService:         teamService,
		ConversationService: conversationService,
		MessagingService:    messagingService,
		EventService:        eventService,
		Redis:               redisClient,
	}
	s.Start()
}
