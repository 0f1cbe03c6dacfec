package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/deadloked8999/e-bar/internal/http/handlers"
	"github.com/deadloked8999/e-bar/internal/http/middleware"
)

// BuildRouter assembles the route table. Public routes cover
// registration, login and the reset flow; everything else requires a
// bearer token, and document verification is additionally gated by the
// role policy.
func BuildRouter(ah *handlers.AuthHandlers, eh *handlers.EstablishmentHandlers, dh *handlers.DocumentHandlers, authmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)

	v := r.Group("/").Use(authmw.RequireAuth())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/change-password", ah.ChangePassword)

	v.GET("/establishments/:id", eh.Get)
	v.PUT("/establishments/:id", eh.Update)
	v.POST("/establishments/:id/logo", eh.UploadLogo)
	v.POST("/establishments/:id/submit", dh.Submit)

	v.POST("/documents/upload", dh.Upload)
	v.GET("/documents", dh.List)
	v.GET("/documents/stats", dh.Stats)
	v.GET("/documents/:id", dh.Get)
	v.DELETE("/documents/:id", dh.Delete)

	adm := r.Group("/admin").Use(authmw.RequireAuth(), cb.Enforce())
	adm.POST("/documents/:id/verify", dh.Verify)

	return r
}
