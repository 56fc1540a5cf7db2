package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/booking"
	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize stores and handlers
	userStore := handlers.NewGormUserStore(db)
	appointmentStore := handlers.NewGormAppointmentStore(db)
	reserver := booking.NewReserver(booking.NewGormStore(db))
	authHandler := handlers.NewAuthHandler(userStore, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, userStore, appointmentStore, reserver)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)
	medicationHandler := handlers.NewMedicationHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
		}
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(db, cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
			authRoutesPrivate.PUT("/password", authHandler.UpdatePassword)
			authRoutesPrivate.POST("/refresh", authHandler.RefreshToken)
			authRoutesPrivate.DELETE("/account", authHandler.DeleteAccount)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Doctor directory, accessible to all authenticated users for booking
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			userRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser) // Self-or-admin check in handler
			userRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), userHandler.DeleteUser)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Patients book for themselves, admins on behalf of a patient
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), appointmentHandler.CreateAppointment)

			appointmentRoutes.GET("", appointmentHandler.GetAppointments) // Role scoping inside handler
			appointmentRoutes.GET("/mine", appointmentHandler.GetMyAppointments)

			// Record-level access checked by the policy inside the handlers
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Prescription routes
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.GET("", prescriptionHandler.GetPrescriptions)
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.GET("/:id", prescriptionHandler.GetPrescriptionByID)
			prescriptionRoutes.PUT("/:id", prescriptionHandler.UpdatePrescription)
			prescriptionRoutes.DELETE("/:id", prescriptionHandler.DeletePrescription)
		}

		// Medication catalog routes
		medicationRoutes := private.Group("/medications")
		{
			medicationRoutes.GET("", medicationHandler.GetMedications)
			medicationRoutes.GET("/:id", medicationHandler.GetMedicationByID)

			adminMedicationRoutes := medicationRoutes.Group("")
			adminMedicationRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminMedicationRoutes.POST("", medicationHandler.CreateMedication)
				adminMedicationRoutes.PUT("/:id", medicationHandler.UpdateMedication)
				adminMedicationRoutes.DELETE("/:id", medicationHandler.DeleteMedication)
			}
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
