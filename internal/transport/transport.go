package transport

import (
	"net/http"
	"time"

	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/internal/transport/middleware"
	"github.com/abhey8/Hospital-OPD/pkg/token"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Slot         *SlotHandler
	Appointment  *AppointmentHandler
	Records      *RecordsHandler
	Notification *NotificationHandler
}

func InitRoutes(h *Handlers, tokens *token.Manager) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")

	// Auth routes are open, but rate limited against brute force
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(5, 10))
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/password-reset", h.Auth.ResetPassword)
		auth.GET("/verify", h.Auth.Verify)

		// Admin account management
		users := auth.Group("/users", middleware.Auth(tokens), middleware.RequireRole(entity.RoleAdmin))
		{
			users.GET("", h.Auth.GetAllUsers)
			users.DELETE("/:id", h.Auth.DeleteUser)
			users.PUT("/:id/toggle-status", h.Auth.ToggleUserStatus)
		}
	}

	// Doctor directory is open so patients can browse before signing up
	api.GET("/doctors", h.Profile.GetDoctors)

	authed := api.Group("", middleware.Auth(tokens))
	{
		patients := authed.Group("/patients")
		{
			patients.GET("", middleware.RequireRole(entity.RoleAdmin, entity.RoleDoctor), h.Profile.GetPatients)
			patients.GET("/:userId", h.Profile.GetPatient)
		}

		slots := authed.Group("/slots")
		{
			slots.POST("", middleware.RequireRole(entity.RoleDoctor), h.Slot.CreateSlot)
			slots.GET("", h.Slot.GetAvailableSlots)
			slots.GET("/doctor/:doctorId", h.Slot.GetDoctorSlots)
			slots.DELETE("/:id", middleware.RequireRole(entity.RoleDoctor), h.Slot.DeleteSlot)
		}

		appointments := authed.Group("/appointments")
		{
			appointments.POST("", h.Appointment.Book)
			appointments.GET("", h.Appointment.List)
			appointments.PUT("/:id/status", h.Appointment.UpdateStatus)
		}

		prescriptions := authed.Group("/prescriptions")
		{
			prescriptions.POST("", middleware.RequireRole(entity.RoleDoctor), h.Records.CreatePrescription)
			prescriptions.GET("", h.Records.GetPrescriptions)
		}

		labRequests := authed.Group("/lab-requests")
		{
			labRequests.POST("", middleware.RequireRole(entity.RoleDoctor), h.Records.CreateLabRequest)
			labRequests.GET("", h.Records.GetLabRequests)
			labRequests.PUT("/:id/status", middleware.RequireRole(entity.RoleDoctor, entity.RoleAdmin), h.Records.UpdateLabRequestStatus)
		}

		bills := authed.Group("/bills")
		{
			bills.POST("", middleware.RequireRole(entity.RoleAdmin), h.Records.CreateBill)
			bills.GET("", h.Records.GetBills)
			bills.PUT("/:id/status", middleware.RequireRole(entity.RoleAdmin), h.Records.UpdateBillStatus)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
			notifications.PUT("/read-all", h.Notification.MarkAllRead)
			notifications.DELETE("/:id", h.Notification.Delete)

			// Admin operations
			notifications.POST("/check-reminders", middleware.RequireRole(entity.RoleAdmin), h.Notification.CheckReminders)
			notifications.GET("/stats", middleware.RequireRole(entity.RoleAdmin), h.Notification.Stats)
		}
	}

	return router
}
