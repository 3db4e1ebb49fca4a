// Package httpapi exposes the application services as a JSON API plus the
// realtime websocket endpoint.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/snackswap/snackswap/internal/logging"
	"github.com/snackswap/snackswap/internal/server/realtime"
	"github.com/snackswap/snackswap/internal/server/services"
)

type Server struct {
	users     *services.UserService
	foods     *services.FoodService
	swaps     *services.SwapService
	hub       *realtime.Hub
	jwtSecret []byte
	logger    logging.Logger
}

func NewServer(users *services.UserService, foods *services.FoodService, swaps *services.SwapService,
	hub *realtime.Hub, jwtSecret []byte, logger logging.Logger) *Server {
	return &Server{
		users:     users,
		foods:     foods,
		swaps:     swaps,
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Router wires every route. Auth endpoints are open; everything else sits
// behind the Bearer middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup/start", s.handleSignupStart)
		authGroup.POST("/signup/resend", s.handleSignupResend)
		authGroup.POST("/signup/complete", s.handleSignupComplete)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/refresh", s.handleRefresh)
		authGroup.POST("/logout", s.handleLogout)
		authGroup.POST("/forgot-password", s.handleForgotPassword)
		authGroup.POST("/verify-otp", s.handleVerifyResetOTP)
		authGroup.POST("/reset-password", s.handleResetPassword)
	}

	protected := api.Group("")
	protected.Use(s.AuthMiddleware())
	{
		protected.GET("/profile", s.handleGetProfile)
		protected.PUT("/profile", s.handleUpdateProfile)
		protected.PUT("/profile/preferences", s.handleUpdatePreferences)
		protected.POST("/profile/password", s.handleChangePassword)

		protected.GET("/foods", s.handleListFoods)
		protected.POST("/foods", s.handleCreateFood)
		protected.GET("/foods/:id", s.handleGetFood)
		protected.PUT("/foods/:id", s.handleUpdateFood)
		protected.DELETE("/foods/:id", s.handleDeleteFood)
		protected.POST("/uploads", s.handlePresignUpload)

		protected.POST("/swaps", s.handleCreateSwap)
		protected.GET("/swaps/received", s.handleListReceived)
		protected.GET("/swaps/sent", s.handleListSent)
		protected.POST("/swaps/:id/respond", s.handleRespondSwap)
		protected.GET("/swaps/:id/messages", s.handleOpenThread)
		protected.POST("/swaps/:id/messages", s.handleSendMessage)

		protected.GET("/inbox/unread", s.handleUnreadCount)
		protected.GET("/inbox/ws", s.handleWebsocket)
	}

	return r
}
