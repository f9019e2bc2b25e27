package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kariyer_backend/internal/ai"
	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/config"
	"kariyer_backend/internal/email"
	"kariyer_backend/internal/handlers"
	"kariyer_backend/internal/imageprocessor"
	"kariyer_backend/internal/jobfeed"
	"kariyer_backend/internal/llm"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/internal/routes"
	"kariyer_backend/internal/services"
	"kariyer_backend/internal/storage"
	"kariyer_backend/internal/validator"
	"kariyer_backend/internal/workers"
	"kariyer_backend/ws"
)

const jobFeedSeed = 0x6b6172697965

// Infrastructure is everything the services need besides the database.
type Infrastructure struct {
	Storage   storage.Storage
	Tokens    *auth.TokenManager
	Mailer    *email.Mailer
	Assistant ai.Assistant
	WhatsApp  services.WhatsAppGateway
	Chat      services.ChatNotifier
}

// NewInfrastructure builds storage, mail, the AI assistant and the token
// manager from cfg. A nil gateway means WhatsApp is disabled.
func NewInfrastructure(ctx context.Context, cfg *config.Config, gateway services.WhatsAppGateway, chat services.ChatNotifier) (*Infrastructure, error) {
	storageInstance, err := storage.NewStorage(ctx, storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		AccountID:  cfg.Storage.AccountID,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	templates, err := email.NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	if cfg.Email.TemplatesDir != "" {
		if err := templates.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			return nil, fmt.Errorf("failed to load email templates from %s: %w", cfg.Email.TemplatesDir, err)
		}
	}
	provider := email.NewProviderFromConfig(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		Timeout:   10 * time.Second,
	})
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host is not set, emails are only logged")
	}

	var completer llm.Completer = llm.Unconfigured{}
	gemini, err := llm.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature)
	switch {
	case err == nil:
		completer = gemini
		logger.Info("AI assistant enabled", "model", cfg.AI.Model)
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Warn("GEMINI_API_KEY is not set, AI features are unavailable")
	default:
		return nil, err
	}

	if gateway == nil {
		gateway = services.DisabledWhatsApp{}
	}

	return &Infrastructure{
		Storage:   storageInstance,
		Tokens:    auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute),
		Mailer:    email.NewMailer(provider, templates, cfg.Server.PublicURL),
		Assistant: ai.NewAssistant(completer),
		WhatsApp:  gateway,
		Chat:      chat,
	}, nil
}

// InitializeServices wires repositories into every service.
func InitializeServices(cfg *config.Config, infra *Infrastructure) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	salesRepo := repositories.NewSalesRepository()
	settingsRepo := repositories.NewSettingsRepository()
	consultantRepo := repositories.NewConsultantRepository()
	chatRepo := repositories.NewChatRepository()
	cvRepo := repositories.NewCVRepository()
	jobRepo := repositories.NewJobRepository()
	mediaRepo := repositories.NewMediaRepository()
	adminLogRepo := repositories.NewAdminLogRepository()
	waLogRepo := repositories.NewWhatsAppLogRepository()

	auditService := services.NewAuditService(adminLogRepo)
	settingsService := services.NewSettingsService(settingsRepo, auditService)
	notificationService := services.NewNotificationService(infra.Mailer, infra.WhatsApp, waLogRepo)

	return &services.ServiceContainer{
		AuthService: services.NewAuthService(
			userRepo, subscriptionRepo, infra.Tokens, notificationService,
			cfg.AI.SignupTokens, cfg.Server.PublicURL,
		),
		UserService: services.NewUserService(userRepo, subscriptionRepo, auditService),
		SubscriptionService: services.NewSubscriptionService(
			subscriptionRepo, userRepo, salesRepo, settingsService, auditService, notificationService,
		),
		ConsultantService: services.NewConsultantService(consultantRepo, userRepo, auditService),
		ChatService: services.NewChatService(
			chatRepo, consultantRepo, userRepo, subscriptionRepo, infra.Chat, cfg.Chat.RoomCreditCost,
		),
		CVService: services.NewCVService(cvRepo, userRepo, infra.Assistant, services.AICosts{
			CVAnalysis: cfg.AI.Costs.CVAnalysis,
			CVParse:    cfg.AI.Costs.CVParse,
			Improve:    cfg.AI.Costs.Improve,
			JobMatch:   cfg.AI.Costs.JobMatch,
		}, cfg.Upload.MaxSize),
		JobService: services.NewJobService(
			jobRepo, cvRepo, userRepo, jobfeed.NewGenerator(jobFeedSeed), infra.Assistant,
			cfg.AI.Costs.JobMatch, auditService,
		),
		MediaService: services.NewMediaService(
			mediaRepo, infra.Storage, imageprocessor.NewProcessor(cfg.Upload.ImageQuality),
			services.MediaConfig{MaxSize: cfg.Upload.MaxSize, AllowedTypes: cfg.Upload.AllowedTypes},
			auditService,
		),
		SettingsService:     settingsService,
		AuditService:        auditService,
		AdminService:        services.NewAdminService(userRepo, subscriptionRepo, chatRepo, jobRepo, cvRepo, salesRepo, waLogRepo),
		WhatsAppService:     services.NewWhatsAppService(infra.WhatsApp, notificationService, waLogRepo, auditService),
		NotificationService: notificationService,
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, infra *Infrastructure) (*handlers.AppHandlers, *middleware.Authenticator) {
	authn := middleware.NewAuthenticator(infra.Tokens, repositories.NewUserRepository(), cfg.JWT.CookieName)
	baseHandler := handlers.NewBaseHandler(validator.New(), authn)

	loginLimiter := middleware.NewRateLimiter(10, 5)
	aiLimiter := middleware.NewRateLimiter(cfg.AI.RequestsPerMinute, cfg.AI.RequestsPerMinute)

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, svc.AuthService, handlers.SessionCookie{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.JWT.CookieSecure,
		}, loginLimiter),
		UserHandler:         handlers.NewUserHandler(baseHandler, svc.UserService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, svc.SubscriptionService),
		ConsultantHandler:   handlers.NewConsultantHandler(baseHandler, svc.ConsultantService),
		ChatHandler:         handlers.NewChatHandler(baseHandler, svc.ChatService),
		CVHandler:           handlers.NewCVHandler(baseHandler, svc.CVService, aiLimiter, cfg.Upload.MaxSize),
		JobHandler:          handlers.NewJobHandler(baseHandler, svc.JobService, aiLimiter),
		MediaHandler:        handlers.NewMediaHandler(baseHandler, svc.MediaService, cfg.Upload.MaxSize),
		FileHandler:         handlers.NewFileHandler(baseHandler, infra.Storage),
		SettingsHandler:     handlers.NewSettingsHandler(baseHandler, svc.SettingsService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, svc.AdminService, svc.AuditService),
		WhatsAppHandler:     handlers.NewWhatsAppHandler(baseHandler, svc.WhatsAppService),
	}, authn
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// SetupRouter builds the services and returns the fully routed engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, infra *Infrastructure, hub *ws.Hub) (*gin.Engine, *services.ServiceContainer) {
	serviceContainer := InitializeServices(cfg, infra)
	appHandlers, authn := initializeHandlers(cfg, serviceContainer, infra)

	ginRouter := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(ginRouter, db, appHandlers, ws.NewHandler(hub, cfg.Server.AllowedOrigins), authn)

	return ginRouter, serviceContainer
}

// Run serves HTTP and the background workers until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, db *gorm.DB, gateway services.WhatsAppGateway) error {
	hub := ws.NewHub()
	go hub.Run(ctx)

	infra, err := NewInfrastructure(ctx, cfg, gateway, hub)
	if err != nil {
		return err
	}

	ginRouter, serviceContainer := SetupRouter(cfg, db, infra, hub)

	workers.NewSubscriptionWorker(db, serviceContainer.SubscriptionService, cfg.Workers.Interval).Start(ctx)
	workers.NewJobWorker(db, serviceContainer.JobService, cfg.Workers.Interval).Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", server.Addr, "env", cfg.Server.Env)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	serviceContainer.NotificationService.Wait()
	logger.Info("Server stopped")
	return nil
}
