package routes

import (
	"net/http"

	"roomi/api/handler"
	"roomi/api/middleware"
	"roomi/internal/entity"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Hostels        *handler.HostelHandler
	AuthMiddleware middleware.AuthMiddleware
	CodeRate       *middleware.IPRateLimiter
	LoginRate      *middleware.IPRateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	hostelHandler *handler.HostelHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Users:          userHandler,
		Hostels:        hostelHandler,
		AuthMiddleware: authMiddleware,
		CodeRate:       middleware.NewCodeRequestLimiter(),
		LoginRate:      middleware.NewLoginLimiter(),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})

	auth := e.Group("/api/auth")
	auth.POST("/send-verification", r.Auth.SendVerification, r.CodeRate.Limit)
	auth.POST("/resend-verification", r.Auth.ResendVerification, r.CodeRate.Limit)
	auth.POST("/verify-and-register", r.Auth.VerifyAndRegister, r.CodeRate.Limit)
	auth.POST("/login", r.Auth.Login, r.LoginRate.Limit)
	auth.POST("/verify-password", r.Auth.VerifyPassword, r.AuthMiddleware.RequireAuth)

	users := e.Group("/api/users", r.AuthMiddleware.RequireAuth)
	users.GET("/profile", r.Users.GetProfile)
	users.PUT("/profile", r.Users.UpdateProfile)
	users.POST("/deactivate", r.Users.Deactivate)
	users.POST("/email/request-update", r.Users.RequestEmailUpdate, r.CodeRate.Limit)
	users.POST("/email/verify-update", r.Users.VerifyEmailUpdate)
	users.POST("/upgrade/request", r.Users.RequestOwnerUpgrade, r.CodeRate.Limit)
	users.POST("/upgrade/confirm", r.Users.ConfirmOwnerUpgrade)

	e.GET("/api/hostels", r.Hostels.Search)
	e.GET("/api/hostels/mine", r.Hostels.ListMine, r.AuthMiddleware.RequireAuth,
		middleware.RequireUserType(string(entity.UserTypeHostelOwner)))
	e.GET("/api/hostels/:id", r.Hostels.Get)
	e.POST("/api/hostels", r.Hostels.Create, r.AuthMiddleware.RequireAuth,
		middleware.RequireUserType(string(entity.UserTypeHostelOwner)))
	e.DELETE("/api/hostels/:id", r.Hostels.Delete, r.AuthMiddleware.RequireAuth,
		middleware.RequireUserType(string(entity.UserTypeHostelOwner)))
}
