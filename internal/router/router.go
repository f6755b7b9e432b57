package router

import (
	"github.com/anandmuthunayagam/Mahizh/internal/config"
	"github.com/anandmuthunayagam/Mahizh/internal/handler"
	"github.com/anandmuthunayagam/Mahizh/internal/middleware"
	"github.com/anandmuthunayagam/Mahizh/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API route groups.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// login/registration, no auth gate (register is setup-token gated
	// inside the handler)
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours,
		cfg.Security.BcryptCost, cfg.Security.SetupToken)
	api.POST("/auth/admin/register", authHandler.RegisterAdmin)
	api.POST("/auth/admin/login", authHandler.AdminLogin)
	api.POST("/auth/user/login", authHandler.UserLogin)

	// any authenticated role
	authed := api.Group("")
	authed.Use(middleware.Auth(jwtSecret))

	collectionHandler := handler.NewCollectionHandler(db)
	authed.GET("/collections", collectionHandler.List)

	expenseHandler := handler.NewExpenseHandler(db)
	authed.GET("/expenses", expenseHandler.List)
	authed.GET("/expenses/attachment/:id", expenseHandler.DownloadAttachment)

	ownerResidentHandler := handler.NewOwnerResidentHandler(db)
	authed.GET("/owner-residents/home-status", ownerResidentHandler.HomeStatus)

	dashboardHandler := handler.NewDashboardHandler(db)
	authed.GET("/dashboard", dashboardHandler.Summary)

	reportHandler := handler.NewReportHandler(db)
	authed.GET("/reports/monthly-summary", reportHandler.MonthlySummary)

	// admin only; mutations go through the audit trail
	admin := api.Group("")
	admin.Use(
		middleware.Auth(jwtSecret, models.RoleAdmin),
		middleware.Audit(db),
	)

	admin.POST("/auth/admin/create-user", authHandler.CreateUser)
	admin.DELETE("/auth/admin/users/:id", authHandler.DeleteUser)

	admin.POST("/collections", collectionHandler.Create)
	admin.PUT("/collections/:id", collectionHandler.Update)
	admin.DELETE("/collections/:id", collectionHandler.Delete)

	admin.POST("/expenses", expenseHandler.Create)
	admin.PUT("/expenses/:id", expenseHandler.Update)
	admin.DELETE("/expenses/:id", expenseHandler.Delete)

	admin.GET("/owner-residents", ownerResidentHandler.List)
	admin.POST("/owner-residents", ownerResidentHandler.Upsert)

	exportHandler := handler.NewExportHandler(db)
	admin.GET("/collections/export/csv", exportHandler.Collections)
	admin.GET("/expenses/export/csv", exportHandler.Expenses)

	auditHandler := handler.NewAuditHandler(db, cfg.App.PageSize)
	admin.GET("/logs", auditHandler.List)

	// resident self-service, scoped to the token's home
	resident := api.Group("/resident")
	resident.Use(middleware.Auth(jwtSecret, models.RoleUser))

	residentHandler := handler.NewResidentHandler(db)
	resident.GET("/profile", residentHandler.Profile)
	resident.GET("/payments", residentHandler.Payments)
	resident.GET("/current-status", residentHandler.CurrentStatus)
	resident.GET("/expenses", residentHandler.Expenses)

	return r
}
