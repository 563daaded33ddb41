package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/david-solomon-henshaw/app/internal/http/handlers"
	"github.com/david-solomon-henshaw/app/internal/http/middleware"
)

// BuildRouter assembles the gin engine. Public routes carry no
// middleware; everything else goes through JWT validation and the
// casbin enforcer with ownership fallback.
func BuildRouter(
	ah *handlers.AuthHandlers,
	acch *handlers.AccountHandlers,
	apph *handlers.AppointmentHandlers,
	ph *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/verify-otp", ah.VerifyOTP)

	// Patient self-registration stays open; everything else under
	// /patients requires a token.
	r.POST("/patients/register", acch.RegisterPatient)

	pat := r.Group("/patients").Use(jwtmw.WithJWT(), cb.Enforce())
	pat.GET("/:id", acch.PatientProfile)
	pat.POST("/appointments", apph.Create)

	cg := r.Group("/caregivers").Use(jwtmw.WithJWT(), cb.Enforce())
	cg.GET("/:id", acch.GetCaregiver)
	cg.GET("/:id/appointments", apph.ListForCaregiver)
	cg.PUT("/:id/appointment", apph.UpdateStatusByCaregiver)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.POST("/register", acch.RegisterAdmin)
	adm.GET("/appointments", apph.List)
	adm.PUT("/appointments/:id", apph.Update)
	adm.PUT("/appointments/:id/cancel", apph.Cancel)
	adm.GET("/appointments/patient/:id", apph.ListForPatient)
	adm.POST("/caregivers", acch.CreateCaregiver)
	adm.GET("/caregivers", acch.ListCaregivers)
	adm.GET("/caregivers/:id", acch.GetCaregiver)
	adm.PUT("/caregivers/:id", acch.UpdateCaregiver)
	adm.DELETE("/caregivers/:id", acch.DeleteCaregiver)
	adm.GET("/action-logs", acch.ListActionLogs)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
