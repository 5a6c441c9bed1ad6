package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucRecurrence "github.com/BruksfildServices01/salon-scheduler/internal/usecase/recurrence"
)

// Deps reúne o que o main cria e precisa fechar no shutdown.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
	Locker lock.DayLocker
	Audit  *audit.Dispatcher
	Events *events.Dispatcher
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	db := deps.DB
	cfg := deps.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	recurrenceRepo := infraRepo.NewRecurrenceGormRepository(db)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		deps.Locker,
		deps.Audit,
		deps.Logger,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		deps.Locker,
		deps.Audit,
	)

	registerPaymentUC := ucAppointment.NewRegisterPayment(appointmentRepo, deps.Audit)
	updateTotalUC := ucAppointment.NewUpdateTotal(appointmentRepo, deps.Audit)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		deps.Audit,
		deps.Events,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		deps.Audit,
		deps.Events,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// 🧠 USE CASES — RECURRENCE
	// ======================================================
	expandTemplateUC := ucRecurrence.NewExpandTemplate(
		appointmentRepo,
		recurrenceRepo,
		deps.Audit,
		deps.Events,
		deps.Logger,
		cfg.RecurrenceDefaultCount,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	salonHandler := handlers.NewSalonHandler(db, deps.Audit)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, deps.Audit)
	closureHandler := handlers.NewClosureHandler(db, deps.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		registerPaymentUC,
		updateTotalUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		availabilityUC,
	)

	templateHandler := handlers.NewRecurringTemplateHandler(db, deps.Audit, expandTemplateUC)
	pendingReturnHandler := handlers.NewPendingReturnHandler(db, deps.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createAppointmentUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id/history", clientHandler.History)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/closures", closureHandler.List)
			secured.POST("/me/closures", closureHandler.Create)
			secured.DELETE("/me/closures/:id", closureHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/payment", appointmentHandler.RegisterPayment)
			secured.PATCH("/me/appointments/:id/total", appointmentHandler.UpdateTotal)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// RECURRENCE
			// ------------------------------
			secured.POST("/me/recurring-templates", templateHandler.Create)
			secured.GET("/me/recurring-templates", templateHandler.List)
			secured.PATCH("/me/recurring-templates/:id/deactivate", templateHandler.Deactivate)
			secured.POST("/me/recurring-templates/:id/expand", templateHandler.Expand)

			secured.GET("/me/pending-returns", pendingReturnHandler.List)
			secured.PATCH("/me/pending-returns/:id", pendingReturnHandler.Resolve)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
