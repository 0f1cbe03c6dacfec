package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/deadloked8999/e-bar/internal/config"
	httpx "github.com/deadloked8999/e-bar/internal/http"
	"github.com/deadloked8999/e-bar/internal/http/handlers"
	"github.com/deadloked8999/e-bar/internal/http/middleware"
	"github.com/deadloked8999/e-bar/internal/ratelimit"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if ml, ok := c.Limiter.(*ratelimit.MemoryLimiter); ok {
		ml.StartJanitor(context.Background(), cfg.LoginWindow)
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.ResetSvc)
	estH := handlers.NewEstablishmentHandlers(c.EstRepo, c.Guard, c.Store, cfg.MaxLogoSizeBytes)
	docH := handlers.NewDocumentHandlers(c.DocSvc, c.Guard)

	authMW := middleware.NewAuthMW(c.Guard)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E, c.EstRepo)

	r := httpx.BuildRouter(authH, estH, docH, authMW, casbinMW)

	if err := seedPolicies(c.Casbin.E); err != nil {
		return err
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default admin policy when the store holds
// none. A failed seed would leave the admin routes unusable, so every
// step is an error, not a warning.
func seedPolicies(e *casbin.Enforcer) error {
	policies, err := e.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}
	if len(policies) > 0 {
		return nil
	}

	if _, err := e.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)"); err != nil {
		return fmt.Errorf("failed to seed admin policy: %w", err)
	}
	if err := e.SavePolicy(); err != nil {
		return fmt.Errorf("failed to persist policies: %w", err)
	}
	log.Println("casbin: seeded default policies")
	return nil
}
