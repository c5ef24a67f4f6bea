// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"
	_ "muniportal/docs" // Import swagger docs
	"muniportal/internal/api/handlers"
	"muniportal/internal/api/middleware"
	"muniportal/internal/attempt"
	"muniportal/internal/audit"
	"muniportal/internal/auth"
	"muniportal/internal/config"
	"muniportal/internal/email"
	"muniportal/internal/lookup"
	"muniportal/internal/repository/postgres"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, db *sql.DB) *gin.Engine {
	// Create router
	r := gin.Default()

	// Apply compression middleware globally
	r.Use(middleware.Compression())

	// Initialize health handler for basic routes
	healthHandler := handlers.NewHealthHandler(db)

	// Routes without rate limiting
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Apply rate limiting to all other routes
	r.Use(middleware.NewRateLimiter(cfg).Middleware())

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	areaRepo := postgres.NewAreaRepository(db)
	cargoRepo := postgres.NewCargoRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	auditRepo := postgres.NewAuditLogRepository(db)
	queryRepo := postgres.NewQueryLogRepository(db)

	// Initialize services
	authService := auth.NewService(cfg, sessionRepo)
	emailService := email.NewService(cfg.Email)
	sink := audit.NewSink(auditRepo, queryRepo)
	tracker := attempt.NewTracker()
	resolver := lookup.NewClient(cfg.Lookup)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo, roleRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, roleRepo, authService, sink, tracker)
	userHandler := handlers.NewUserHandler(userRepo, roleRepo, authService, emailService, sink)
	roleHandler := handlers.NewRoleHandler(roleRepo)
	areaHandler := handlers.NewAreaHandler(areaRepo)
	cargoHandler := handlers.NewCargoHandler(cargoRepo)
	lookupHandler := handlers.NewLookupHandler(resolver, sink)
	auditHandler := handlers.NewAuditHandler(auditRepo, queryRepo, sink)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Health check (no authentication required)
		v1.GET("/health", healthHandler.Health)

		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware.AuthRequired(), authHandler.Logout)
		}

		// Lookup routes resolve the caller loosely so queries can still be
		// attributed when the frontend only forwards a user ID
		lookups := v1.Group("")
		lookups.Use(authMiddleware.Identify())
		{
			lookups.GET("/dni/:dni", lookupHandler.LookupDNI)
			lookups.GET("/ruc/:ruc", lookupHandler.LookupRUC)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.Use(authMiddleware.AuthRequired())
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)

			adminUsers := users.Group("")
			adminUsers.Use(authMiddleware.AdminRequired())
			{
				adminUsers.POST("", userHandler.Create)
				adminUsers.PUT("/:id", userHandler.Update)
				adminUsers.POST("/:id/suspend", userHandler.Suspend)
				adminUsers.POST("/:id/reactivate", userHandler.Reactivate)
				adminUsers.DELETE("/:id", userHandler.Delete)
			}
		}

		// Role routes
		roles := v1.Group("/roles")
		{
			roles.Use(authMiddleware.AuthRequired())
			roles.GET("", roleHandler.List)
			roles.GET("/:id", roleHandler.Get)

			adminRoles := roles.Group("")
			adminRoles.Use(authMiddleware.AdminRequired())
			{
				adminRoles.POST("", roleHandler.Create)
				adminRoles.PUT("/:id", roleHandler.Update)
				adminRoles.DELETE("/:id", roleHandler.Delete)
			}
		}

		// Area routes
		areas := v1.Group("/areas")
		{
			areas.Use(authMiddleware.AuthRequired())
			areas.GET("", areaHandler.List)
			areas.GET("/:id", areaHandler.Get)

			adminAreas := areas.Group("")
			adminAreas.Use(authMiddleware.AdminRequired())
			{
				adminAreas.POST("", areaHandler.Create)
				adminAreas.PUT("/:id", areaHandler.Update)
				adminAreas.DELETE("/:id", areaHandler.Delete)
			}
		}

		// Cargo routes
		cargos := v1.Group("/cargos")
		{
			cargos.Use(authMiddleware.AuthRequired())
			cargos.GET("", cargoHandler.List)
			cargos.GET("/:id", cargoHandler.Get)

			adminCargos := cargos.Group("")
			adminCargos.Use(authMiddleware.AdminRequired())
			{
				adminCargos.POST("", cargoHandler.Create)
				adminCargos.PUT("/:id", cargoHandler.Update)
				adminCargos.DELETE("/:id", cargoHandler.Delete)
			}
		}

		// Audit trail routes
		logs := v1.Group("/audit-logs")
		{
			logs.GET("/mis-consultas", authMiddleware.Identify(), auditHandler.MyQueries)

			adminLogs := logs.Group("")
			adminLogs.Use(authMiddleware.AuthRequired(), authMiddleware.AdminRequired())
			{
				adminLogs.GET("", auditHandler.List)
				adminLogs.POST("/clear", auditHandler.Clear)
			}
		}
	}

	return r
}
