package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/waste-management/internal/auth"
	"github.com/waste-management/internal/config"
	"github.com/waste-management/internal/delivery/http/handler"
	"github.com/waste-management/internal/delivery/http/middleware"
	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/repository/postgres"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger
	db     *postgres.DB
	jwt    *auth.JWTManager

	// Handlers
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	lgHandler      *handler.LocalGovernmentHandler
	vehicleHandler *handler.VehicleHandler
	pickupHandler  *handler.PickupHandler
	statsHandler   *handler.StatsHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *postgres.DB,
	jwt *auth.JWTManager,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	lgHandler *handler.LocalGovernmentHandler,
	vehicleHandler *handler.VehicleHandler,
	pickupHandler *handler.PickupHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Waste Management Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		db:             db,
		jwt:            jwt,
		authHandler:    authHandler,
		userHandler:    userHandler,
		lgHandler:      lgHandler,
		vehicleHandler: vehicleHandler,
		pickupHandler:  pickupHandler,
		statsHandler:   statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		if err := s.db.Health(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	protected := middleware.Protected(s.jwt)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", s.authHandler.Signup)
	authGroup.Post("/signin", s.authHandler.Signin)
	authGroup.Post("/refresh", s.authHandler.Refresh)
	authGroup.Get("/session", protected, s.authHandler.Session)
	authGroup.Post("/onboarding", protected, s.authHandler.CompleteOnboarding)

	// Profile routes
	users := api.Group("/users", protected)
	users.Get("/profile", s.userHandler.GetProfile)
	users.Put("/profile", s.userHandler.UpdateProfile)
	users.Put("/password", s.authHandler.ChangePassword)
	users.Get("/:id/local-government", s.userHandler.GetLocalGovernment)

	// Local government routes: справочник читают все, правят админы
	lgs := api.Group("/local-governments", protected)
	lgs.Get("/", s.lgHandler.List)
	lgs.Get("/:id", s.lgHandler.Get)
	lgs.Post("/", adminOnly, s.lgHandler.Create)
	lgs.Put("/:id", adminOnly, s.lgHandler.Update)
	lgs.Delete("/:id", adminOnly, s.lgHandler.Delete)

	// Vehicle routes
	vehicles := api.Group("/vehicles", protected)
	vehicles.Get("/", s.vehicleHandler.List)
	vehicles.Get("/mine", middleware.RequireRole(domain.RoleDriver), s.vehicleHandler.GetMine)
	vehicles.Get("/:id", s.vehicleHandler.Get)
	vehicles.Post("/", adminOnly, s.vehicleHandler.Create)
	vehicles.Put("/:id/location", middleware.RequireRole(domain.RoleDriver, domain.RoleAdmin), s.vehicleHandler.UpdateLocation)
	vehicles.Put("/:id", adminOnly, s.vehicleHandler.Update)
	vehicles.Delete("/:id", adminOnly, s.vehicleHandler.Delete)

	// Pickup routes: скоупинг по ролям внутри usecase
	pickups := api.Group("/pickups", protected)
	pickups.Post("/", middleware.RequireRole(domain.RoleUser), s.pickupHandler.Create)
	pickups.Get("/", s.pickupHandler.List)
	pickups.Get("/:id", s.pickupHandler.Get)
	pickups.Put("/:id", s.pickupHandler.Update)
	pickups.Delete("/:id", s.pickupHandler.Delete)

	// Admin user management
	admin := api.Group("/admin", protected, adminOnly)
	admin.Get("/users", s.userHandler.ListUsers)
	admin.Post("/users", s.userHandler.CreateUser)
	admin.Get("/users/:id", s.userHandler.GetUser)
	admin.Put("/users/:id", s.userHandler.UpdateUser)
	admin.Delete("/users/:id", s.userHandler.DeleteUser)
	admin.Get("/drivers", s.userHandler.ListDrivers)

	// Dashboard stats
	api.Get("/dashboard/stats", protected, s.statsHandler.GetStats)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App возвращает fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		// Текст внутренней ошибки наружу не отдаем
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": "Internal server error",
			},
		})
	}
}
