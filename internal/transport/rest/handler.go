package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"medcenter/config"
	"medcenter/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.Use(h.rateLimitMiddleware())
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		hospitals := api.Group("/hospitals")
		{
			hospitals.GET("/", h.getHospitals)
			hospitals.GET("/:id", h.getHospitalByID)
			hospitals.GET("/slug/:slug", h.getHospitalBySlug)

			admin := hospitals.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createHospital)
				admin.PUT("/:id", h.updateHospital)
				admin.DELETE("/:id", h.deleteHospital)
				admin.POST("/:id/photo", h.uploadHospitalPhoto)
				admin.DELETE("/:id/photo", h.deleteHospitalPhoto)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("/", h.getDoctors)
			doctors.GET("/:id", h.getDoctorByID)
			doctors.GET("/:id/slots", h.getDoctorFreeSlots)
			doctors.GET("/:id/schedule", h.getDoctorSchedule)

			admin := doctors.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createDoctor)
				admin.PUT("/:id", h.updateDoctor)
				admin.DELETE("/:id", h.deleteDoctor)
				admin.POST("/:id/photo", h.uploadDoctorPhoto)
				admin.DELETE("/:id/photo", h.deleteDoctorPhoto)
			}
		}

		patients := api.Group("/patients")
		patients.Use(h.authMiddleware(), h.staffMiddleware())
		{
			patients.POST("/", h.createPatient)
			patients.GET("/", h.getPatients)
			patients.GET("/:id", h.getPatientByID)
			patients.GET("/slug/:slug", h.getPatientBySlug)
			patients.PUT("/:id", h.updatePatient)
			patients.DELETE("/:id", h.deletePatient)
		}

		schedules := api.Group("/schedules")
		{
			schedules.GET("/", h.getSchedules)
			schedules.GET("/:id", h.getScheduleByID)

			staff := schedules.Group("/")
			staff.Use(h.authMiddleware(), h.staffMiddleware())
			{
				staff.POST("/", h.createSchedule)
				staff.PUT("/:id", h.updateSchedule)
				staff.DELETE("/:id", h.deleteSchedule)
			}
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.POST("/", h.rateLimitMiddleware(), h.createAppointment)
			appointments.GET("/", h.getAppointments)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.PUT("/:id", h.updateAppointment)
			appointments.POST("/:id/confirm", h.staffMiddleware(), h.confirmAppointment)
			appointments.POST("/:id/cancel", h.cancelAppointment)
		}

		records := api.Group("/medical-records")
		records.Use(h.authMiddleware(), h.staffMiddleware())
		{
			records.POST("/", h.createMedicalRecord)
			records.GET("/", h.getMedicalRecords)
			records.GET("/:id", h.getMedicalRecordByID)
			records.PUT("/:id", h.updateMedicalRecord)
			records.DELETE("/:id", h.deleteMedicalRecord)
		}
	}
}
