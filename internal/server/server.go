package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/expomeet/expomeet-server/internal/ai"
	"github.com/expomeet/expomeet-server/internal/bank"
	"github.com/expomeet/expomeet-server/internal/config"
	"github.com/expomeet/expomeet-server/internal/handler"
	"github.com/expomeet/expomeet-server/internal/mail"
	appmw "github.com/expomeet/expomeet-server/internal/middleware"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/pincode"
	"github.com/expomeet/expomeet-server/internal/repository"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/expomeet/expomeet-server/internal/storage"
)

type Server struct {
	e     *echo.Echo
	quota service.QuotaService
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func New(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") || strings.HasSuffix(host, "expomeet.example") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	buyerRepo := repository.NewBuyerProfileRepository(db)
	sellerRepo := repository.NewSellerProfileRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	stallRepo := repository.NewStallRepository(db)
	travelRepo := repository.NewTravelRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	accessRepo := repository.NewAccessLogRepository(db)
	chatRepo := repository.NewChatRepository(db)

	revocation := storage.NewRevocationStore(redisClient)
	files := storage.NewFileStore(cfg)
	mailer := mail.New(cfg)
	ifscClient := bank.NewClient(cfg.RazorpayIFSCBaseURL)
	pincodeClient := pincode.NewClient(cfg.PincodeBaseURL)

	settingsSvc := service.NewSettingsService(settingRepo)
	quotaSvc := service.NewQuotaService(meetingRepo, buyerRepo, sellerRepo, stallRepo, categoryRepo, settingsSvc)
	authSvc := service.NewAuthService(userRepo, buyerRepo, sellerRepo, inviteRepo, revocation, mailer, cfg)
	meetingSvc := service.NewMeetingService(meetingRepo, slotRepo, userRepo, buyerRepo, sellerRepo, quotaSvc, settingsSvc)
	accessSvc := service.NewAccessService(userRepo, buyerRepo, sellerRepo, accessRepo)
	buyerSvc := service.NewBuyerService(buyerRepo, categoryRepo, meetingRepo, quotaSvc, files, ifscClient)
	sellerSvc := service.NewSellerService(sellerRepo, slotRepo)
	stallSvc := service.NewStallService(stallRepo, sellerRepo)
	travelSvc := service.NewTravelService(travelRepo, settingsSvc)

	ollama := ai.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
	provider := buildProvider(cfg, ollama)
	tools := service.NewChatToolRegistry(meetingRepo, buyerRepo, sellerRepo, stallRepo, slotRepo, travelRepo, categoryRepo, quotaSvc)
	chatSvc := service.NewChatService(chatRepo, provider, tools, ollama)

	authHandler := handler.NewAuthHandler(authSvc, accessSvc)
	meetingHandler := handler.NewMeetingHandler(meetingSvc, quotaSvc)
	buyerHandler := handler.NewBuyerHandler(buyerSvc, travelSvc)
	buyersHandler := handler.NewBuyersHandler(buyerSvc)
	sellerHandler := handler.NewSellerHandler(sellerSvc)
	stallHandler := handler.NewStallHandler(stallSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	adminHandler := handler.NewAdminHandler(authSvc, settingsSvc, travelSvc, quotaSvc, files)
	lookupHandler := handler.NewLookupHandler(pincodeClient, ifscClient)

	authMw := appmw.NewAuthMiddleware(authSvc)
	buyer := authMw.RequireRole(model.RoleBuyer)
	seller := authMw.RequireRole(model.RoleSeller)
	admin := authMw.RequireRole(model.RoleAdmin)
	sellerOrAdmin := authMw.RequireRole(model.RoleSeller, model.RoleAdmin)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout, authMw.RequireAuth)
	api.GET("/me", authHandler.Me, authMw.RequireAuth)

	api.GET("/invites/:token/validate", authHandler.ValidateInvite)
	api.POST("/auth/register-invited", authHandler.RegisterInvited)
	api.POST("/auth/register-walkin", authHandler.RegisterWalkIn)
	api.GET("/auth/check_user_access/:slug", authHandler.CheckUserAccess)
	api.GET("/check_user_access/:slug", authHandler.CheckUserAccess)

	api.GET("/lookup/pincode/:code", lookupHandler.Pincode)
	api.GET("/lookup/pincode/:code/validate", lookupHandler.ValidatePincode)
	api.GET("/lookup/ifsc/:code", lookupHandler.IFSC)

	api.POST("/meetings", meetingHandler.Create, authMw.RequireAuth)
	api.POST("/meetings/buyer/request", meetingHandler.Request, authMw.RequireAuth, buyer)
	api.POST("/meetings/seller/request", meetingHandler.Request, authMw.RequireAuth, seller)
	api.GET("/meetings", meetingHandler.List, authMw.RequireAuth)
	api.GET("/meetings/quota/buyer", meetingHandler.BuyerQuota, authMw.RequireAuth, buyer)
	api.GET("/meetings/quota/seller", meetingHandler.SellerQuota, authMw.RequireAuth, seller)
	api.GET("/meetings/export", meetingHandler.Export, authMw.RequireAuth, buyer)
	api.GET("/meetings/export/seller", meetingHandler.Export, authMw.RequireAuth, seller)
	api.GET("/meetings/:id", meetingHandler.Get, authMw.RequireAuth)
	api.POST("/meetings/:id/accept", meetingHandler.Accept, authMw.RequireAuth)
	api.POST("/meetings/:id/reject", meetingHandler.Reject, authMw.RequireAuth)
	api.POST("/meetings/:id/cancel", meetingHandler.Cancel, authMw.RequireAuth)
	api.PUT("/meetings/:id/status", meetingHandler.UpdateStatus, authMw.RequireAuth)
	api.DELETE("/meetings/:id", meetingHandler.Cancel, authMw.RequireAuth)
	api.POST("/meetings/:meeting_id/:buyer_id/confirm", meetingHandler.Confirm, authMw.RequireAuth, seller)

	api.GET("/buyer/profile", buyerHandler.GetProfile, authMw.RequireAuth, buyer)
	api.POST("/buyer/profile", buyerHandler.SaveProfile, authMw.RequireAuth, buyer)
	api.PUT("/buyer/profile", buyerHandler.SaveProfile, authMw.RequireAuth, buyer)
	api.POST("/buyer/profile/image", buyerHandler.UploadProfileImage, authMw.RequireAuth, buyer)
	api.GET("/buyer/dashboard", buyerHandler.Dashboard, authMw.RequireAuth, buyer)
	api.GET("/buyer/bank-details", buyerHandler.GetBankDetails, authMw.RequireAuth, buyer)
	api.PUT("/buyer/bank-details", buyerHandler.SaveBankDetails, authMw.RequireAuth, buyer)
	api.GET("/buyer/travel", buyerHandler.TravelPlans, authMw.RequireAuth, buyer)
	api.PUT("/buyer/travel/transportation", buyerHandler.SaveTransportation, authMw.RequireAuth, buyer)
	api.PUT("/buyer/travel/accommodation", buyerHandler.SaveAccommodation, authMw.RequireAuth, buyer)
	api.GET("/travel/host-properties", buyerHandler.HostProperties, authMw.RequireAuth)

	api.GET("/buyers", buyersHandler.List, authMw.RequireAuth, sellerOrAdmin)
	api.GET("/buyers/by-ids", buyersHandler.ByUserIDs, authMw.RequireAuth, sellerOrAdmin)
	api.POST("/buyers/with-quota", buyersHandler.WithQuota, authMw.RequireAuth, sellerOrAdmin)
	api.GET("/buyers/export-data", buyersHandler.ExportData, authMw.RequireAuth, seller)
	api.GET("/buyer-categories", buyersHandler.Categories, authMw.RequireAuth)
	api.GET("/interests", buyersHandler.Interests, authMw.RequireAuth)
	api.GET("/property-types", buyersHandler.PropertyTypes, authMw.RequireAuth)
	api.GET("/operator-types", buyersHandler.OperatorTypes, authMw.RequireAuth)
	api.GET("/countries", buyersHandler.Countries, authMw.RequireAuth)
	api.GET("/states", buyersHandler.States, authMw.RequireAuth)

	api.GET("/seller/profile", sellerHandler.GetProfile, authMw.RequireAuth, seller)
	api.PUT("/seller/profile", sellerHandler.SaveProfile, authMw.RequireAuth, seller)
	api.GET("/seller/attendees", sellerHandler.Attendees, authMw.RequireAuth, seller)
	api.GET("/sellers", sellerHandler.List, authMw.RequireAuth)
	api.GET("/sellers/:seller_id/time-slots", sellerHandler.TimeSlots, authMw.RequireAuth)

	api.GET("/stalls", stallHandler.ListMine, authMw.RequireAuth, seller)
	api.GET("/stall-types", stallHandler.Types, authMw.RequireAuth)
	api.GET("/stalls/:id/numbers", stallHandler.AvailableNumbers, authMw.RequireAuth, seller)
	api.PUT("/stalls/:id/fascia", stallHandler.RenameFascia, authMw.RequireAuth, seller)
	api.POST("/stalls/:id/number", stallHandler.SelectNumber, authMw.RequireAuth, seller)

	api.POST("/chat/message", chatHandler.SendMessage, authMw.RequireAuth)
	api.GET("/chat/conversations", chatHandler.Conversations, authMw.RequireAuth)
	api.GET("/chat/conversations/:id", chatHandler.Conversation, authMw.RequireAuth)
	api.DELETE("/chat/conversations/:id", chatHandler.Delete, authMw.RequireAuth)
	api.POST("/chat/messages/:message_id/feedback", chatHandler.Feedback, authMw.RequireAuth)
	api.GET("/chat/health", chatHandler.Health, authMw.RequireAuth)

	api.GET("/floorplan", adminHandler.Floorplan, authMw.RequireAuth)

	adminAPI := api.Group("/admin", authMw.RequireAuth, admin)
	adminAPI.GET("/settings", adminHandler.Settings)
	adminAPI.POST("/settings", adminHandler.SetSetting)
	adminAPI.POST("/invites", adminHandler.CreateInvite)
	adminAPI.GET("/travel-report", adminHandler.TravelReport)
	adminAPI.GET("/access-logs", authHandler.ListAccessLogs)
	adminAPI.GET("/stalls", stallHandler.ListAll)
	adminAPI.PUT("/stalls/:id", stallHandler.AdminUpdate)
	adminAPI.POST("/meetings/expire", adminHandler.ExpireStaleMeetings)
	adminAPI.POST("/floorplan", adminHandler.UploadFloorplan)

	return &Server{e: e, quota: quotaSvc}
}

func buildProvider(cfg *config.Config, ollama *ai.OllamaClient) ai.Provider {
	gemini := ai.NewGeminiClient(cfg.GeminiModel)
	switch cfg.LLMProvider {
	case "gemini":
		return gemini
	case "ollama":
		return ollama
	default:
		return ai.NewFallbackProvider(ollama, gemini)
	}
}

// Quota exposes the quota service so the process entrypoint can run the
// background expiry sweep.
func (s *Server) Quota() service.QuotaService {
	return s.quota
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
