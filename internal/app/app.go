package app

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/david-solomon-henshaw/app/internal/config"
	httpx "github.com/david-solomon-henshaw/app/internal/http"
	"github.com/david-solomon-henshaw/app/internal/http/handlers"
	"github.com/david-solomon-henshaw/app/internal/http/middleware"
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

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	accountH := handlers.NewAccountHandlers(c.AccountSvc, c.ActionLogRepo)
	apptH := handlers.NewAppointmentHandlers(c.ApptSvc)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E, cfg.OwnershipRules)

	r := httpx.BuildRouter(authH, accountH, apptH, polH, jwtMW, casbinMW)

	seedDefaultPolicies(c)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedDefaultPolicies installs the baseline role policies on an empty
// policy table. Patients and caregivers have no blanket role grants;
// they reach their own records through the role_owner fallback.
func seedDefaultPolicies(c *Container) {
	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) > 0 {
		return
	}

	c.Casbin.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	c.Casbin.E.AddPolicy("role_admin", "/patients/*", "(GET|POST)")
	c.Casbin.E.AddPolicy("role_admin", "/caregivers/*", "(GET|PUT)")
	c.Casbin.E.AddPolicy("role_owner", "/patients/*", "GET")
	c.Casbin.E.AddPolicy("role_owner", "/patients/appointments", "POST")
	c.Casbin.E.AddPolicy("role_owner", "/caregivers/*", "(GET|PUT)")
	if err := c.Casbin.E.SavePolicy(); err != nil {
		log.Printf("casbin: failed to persist seeded policies: %v", err)
		return
	}
	log.Println("casbin: seeded default policies")
}
