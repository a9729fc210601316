package handler

import (
	"strings"
	"sync"
	"time"

	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/models"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Services are the operations the router exposes. Routes of a nil service
// are not mounted.
type Services struct {
	Auth           *service.AuthService
	Hospitals      *service.HospitalService
	ActivationKeys *service.ActivationKeyService
	Workers        *service.WorkerService
	Patients       *service.PatientService
	Drugs          *service.DrugService
	Services       *service.ServiceCatalog
	LabTests       *service.LabTestService
	Diagnoses      *service.DiagnosisService
	Appointments   *service.AppointmentService
	Prescriptions  *service.PrescriptionService
	LabRequests    *service.LabRequestService
	LabResults     *service.LabResultService
	Billings       *service.BillingService
	Exports        *service.ExportService
}

type Options struct {
	AdminKey      string
	SigninLimiter *middleware.RateLimiter
	SecureCookies bool
}

var registerValidators sync.Once

// RegisterValidators adds the custom binding tags used by request structs:
// hhmm (a 24h "15:04" clock time) and sortdir (asc or desc).
func RegisterValidators() {
	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("15:04", fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("sortdir", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(fl.Field().String()) {
			case "asc", "desc":
				return true
			}
			return false
		})
	})
}

// Register mounts every route on r.
func Register(r *gin.Engine, s Services, opts Options) {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-management-api",
		})
	})

	signinLimit := func(c *gin.Context) { c.Next() }
	if opts.SigninLimiter != nil {
		signinLimit = middleware.RateLimit(opts.SigninLimiter)
	}
	platform := middleware.PlatformKey(opts.AdminKey)
	tenant := []gin.HandlerFunc{middleware.AuthMiddleware(), middleware.TenantAccess()}
	owner := middleware.RequireRole(models.RoleHospital)

	var auth *AuthHandler
	if s.Auth != nil {
		auth = NewAuthHandler(s.Auth, opts.SecureCookies)
		g := r.Group("/auth")
		{
			g.POST("/refresh", auth.Refresh)
			g.POST("/logout", auth.Logout)
		}
	}

	hospitals := r.Group("/hospitals")
	if auth != nil {
		hospitals.POST("/hospitals-signin", signinLimit, auth.HospitalSignin)
	}
	if s.Hospitals != nil {
		h := NewHospitalHandler(s.Hospitals, s.ActivationKeys)
		hospitals.POST("/hospitals-add", signinLimit, h.CreateHospital)

		// Platform operator
		hospitals.GET("/hospitals-fetch", platform, h.GetAllHospitals)
		hospitals.GET("/hospitals-search", platform, h.SearchHospitals)
		hospitals.DELETE("/hospitals-delete", platform, h.DeleteHospital)
		if s.ActivationKeys != nil {
			hospitals.POST("/activation-keys", platform, h.IssueActivationKey)
		}

		// Signed-in hospital
		own := hospitals.Group("", tenant...)
		{
			own.GET("/hospitals-specific", h.GetHospital)
			own.PUT("/hospitals-edit", owner, h.UpdateHospital)
			own.PUT("/hospitals-change-password", owner, h.ChangePassword)
			own.PUT("/renew-activation", owner, h.RenewActivation)
		}
	}

	if auth != nil {
		r.POST("/workers/workers-signin", signinLimit, auth.WorkerSignin)
	}

	type registrar interface{ Register(*gin.RouterGroup) }
	mount := func(prefix string, h registrar) {
		h.Register(r.Group(prefix, tenant...))
	}

	if s.Workers != nil {
		mount("/workers", NewWorkerHandler(s.Workers))
	}
	if s.Patients != nil {
		mount("/patients", NewPatientHandler(s.Patients, s.Exports))
	}
	if s.Drugs != nil {
		mount("/drugs", NewDrugHandler(s.Drugs, s.Exports))
	}
	if s.Services != nil {
		mount("/services", NewServiceHandler(s.Services))
	}
	if s.LabTests != nil {
		mount("/lab_tests", NewLabTestHandler(s.LabTests))
	}
	if s.Diagnoses != nil {
		mount("/diagnosis", NewDiagnosisHandler(s.Diagnoses, s.Exports))
	}
	if s.Appointments != nil {
		mount("/appointments", NewAppointmentHandler(s.Appointments, s.Exports))
	}
	if s.Prescriptions != nil {
		mount("/prescription", NewPrescriptionHandler(s.Prescriptions))
	}
	if s.LabRequests != nil {
		mount("/lab_requests", NewLabRequestHandler(s.LabRequests, s.Exports))
	}
	if s.LabResults != nil {
		mount("/lab_results", NewLabResultHandler(s.LabResults, s.Exports))
	}
	if s.Billings != nil {
		mount("/billings", NewBillingHandler(s.Billings))
	}
}
