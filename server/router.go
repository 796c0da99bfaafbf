package server

import (
	"fmt"
	"net/http"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/techagentng/clubcore/models"
	"github.com/techagentng/clubcore/server/response"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := s.Config.Origins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	limitSend := limitRateForMessages(s.rateLimitStore())

	apirouter := router.Group("/api/v1")
	apirouter.GET("/health", func(c *gin.Context) {
		response.JSON(c, "ok", http.StatusOK, nil, nil)
	})
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/auth/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.GET("/teams/lookup", s.handleLookupTeam())

	messages := authorized.Group("/messages")
	messages.GET("/users", s.handleUsersToMessage())
	messages.GET("/threads", s.handleListThreads())

	messages.POST("/direct", s.handleCreateDirectThread())
	messages.GET("/direct/:conversationID/messages", s.handleListDirectMessages())
	messages.POST("/direct/:conversationID/messages", limitSend, s.handleSendDirectMessage())
	messages.PUT("/direct/:conversationID/read", s.handleMarkDirectRead())
	messages.GET("/direct/:conversationID/members", s.handleGetConversationMembers(models.ConversationDirect))

	messages.POST("/group", s.handleCreateGroupThread())
	messages.GET("/group/:conversationID/messages", s.handleListGroupMessages())
	messages.POST("/group/:conversationID/messages", limitSend, s.handleSendGroupMessage())
	messages.PUT("/group/:conversationID/seen", s.handleMarkGroupSeen())
	messages.GET("/group/:conversationID/members", s.handleGetConversationMembers(models.ConversationGroup))

	events := authorized.Group("/events")
	events.GET("", s.handleListMyEvents())
	events.POST("", s.handleCreateEvent())
	events.PUT("/:eventID", s.handleUpdateEvent())
	events.DELETE("/:eventID", s.handleDeleteEvent())
}

// rateLimitStore keeps counters in redis when a client is configured so the
// limit holds across instances.
func (s *Server) rateLimitStore() ratelimit.Store {
	rate := s.Config.MessageRateEvery
	if rate <= 0 {
		rate = time.Minute
	}
	limit := s.Config.MessageRateLimit
	if limit == 0 {
		limit = 20
	}
	if s.Redis != nil {
		return ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: s.Redis,
			Rate:        rate,
			Limit:       limit,
		})
	}
	return ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  rate,
		Limit: limit,
	})
}
