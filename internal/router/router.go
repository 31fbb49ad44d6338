package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/certificate-validator/config"
	"github.com/ikkim/certificate-validator/internal/app/controller"
	"github.com/ikkim/certificate-validator/internal/app/view"
	"github.com/ikkim/certificate-validator/internal/middleware"
)

type Router struct {
	pageController         *controller.PageController
	tabController          *controller.TabController
	dashboardController    *controller.DashboardController
	uploadController       *controller.UploadController
	verificationController *controller.VerificationController
	certificateController  *controller.CertificateController
	exportController       *controller.ExportController
	notificationController *controller.NotificationController
	templates              *template.Template
	config                 *config.Config
}

func NewRouter(
	pageController *controller.PageController,
	tabController *controller.TabController,
	dashboardController *controller.DashboardController,
	uploadController *controller.UploadController,
	verificationController *controller.VerificationController,
	certificateController *controller.CertificateController,
	exportController *controller.ExportController,
	notificationController *controller.NotificationController,
	templates *template.Template,
	cfg *config.Config,
) *Router {
	return &Router{
		pageController:         pageController,
		tabController:          tabController,
		dashboardController:    dashboardController,
		uploadController:       uploadController,
		verificationController: verificationController,
		certificateController:  certificateController,
		exportController:       exportController,
		notificationController: notificationController,
		templates:              templates,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(r.config.CORS.AllowedOrigins))
	router.MaxMultipartMemory = r.config.Upload.MaxBytes + 1<<20
	router.SetHTMLTemplate(r.templates)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Certificate validator is running",
		})
	})

	router.GET("/", r.pageController.Index)
	router.GET("/tabs/:tab", r.pageController.ShowTab)
	router.GET("/ws", r.notificationController.Stream)

	v1 := router.Group("/api/v1")
	{
		tabs := v1.Group("/tabs")
		{
			tabs.GET("/current", r.tabController.Current)
			tabs.POST("/:tab", r.tabController.Activate)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("", r.dashboardController.GetDashboard)
			dashboard.GET("/chart.png", r.dashboardController.Chart(view.ChartPNG))
			dashboard.GET("/chart.svg", r.dashboardController.Chart(view.ChartSVG))
		}

		uploads := v1.Group("/uploads")
		{
			uploads.POST("", r.uploadController.Submit)
			uploads.GET("/current", r.uploadController.Current)
			uploads.DELETE("/current", r.uploadController.Reset)
		}

		verifications := v1.Group("/verifications")
		{
			verifications.POST("", r.verificationController.Verify)
			verifications.GET("/recent", r.verificationController.GetRecent)
			verifications.GET("/stats", r.verificationController.GetStats)
		}

		certificates := v1.Group("/certificates")
		{
			certificates.GET("", r.certificateController.ListCertificates)
			certificates.POST("", r.certificateController.CreateCertificate)
			certificates.PUT("/:id", r.certificateController.UpdateCertificate)
			certificates.DELETE("/:id", r.certificateController.DeleteCertificate)
			certificates.GET("/:id/details", r.certificateController.GetDetails)
			certificates.POST("/:id/qr", r.certificateController.GenerateQR)
		}

		v1.GET("/share/:token", r.certificateController.ResolveShare)

		admin := v1.Group("/admin")
		{
			admin.GET("/export", r.exportController.ExportJSON)
			admin.GET("/export.xlsx", r.exportController.ExportXLSX)
			admin.POST("/backup", r.exportController.Backup)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", r.notificationController.GetNotifications)
			notifications.DELETE("/:id", r.notificationController.DismissNotification)
		}
	}

	return router
}
