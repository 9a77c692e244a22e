package api

import (
	"path/filepath"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/centerthink/centerthink-api/docs"
	v1 "github.com/centerthink/centerthink-api/internal/api/handler/v1"
	"github.com/centerthink/centerthink-api/internal/api/middleware"
	"github.com/centerthink/centerthink-api/internal/config"
	"github.com/centerthink/centerthink-api/internal/email"
	"github.com/centerthink/centerthink-api/internal/repository"
	"github.com/centerthink/centerthink-api/internal/repository/dao"
	"github.com/centerthink/centerthink-api/internal/service"
	"github.com/centerthink/centerthink-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	sender email.Sender
	store  storage.Store
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		sender: email.NewSender(conf.Email.ResendAPIKey),
		store: storage.NewLocalStore(
			filepath.Join(conf.Storage.Dir, conf.Storage.Bucket),
			conf.API.BaseURL,
			conf.Storage.SigningKey,
		),
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	workspaceHandler := s.initWorkspaceHandler(db)
	userHandler := s.initUserHandler(db)
	cityHandler := s.initCityHandler(db)
	speakerHandler := s.initSpeakerHandler(db)
	venueHandler := s.initVenueHandler(db)
	eventHandler := s.initEventHandler(db)
	orderHandler := s.initOrderHandler(db)
	expenseHandler := s.initExpenseHandler(db)
	fileHandler := v1.NewFileHandler(s.store)

	s.MountHandlers(authHandler, workspaceHandler, userHandler, cityHandler,
		speakerHandler, venueHandler, eventHandler, orderHandler, expenseHandler, fileHandler)

	return s
}

func (s *Server) newAuthService(db *gorm.DB) *service.AuthService {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	cityRepo := repository.NewCityRepository(dao.NewCityDAO(db))

	return service.NewAuthService(userRepo, cityRepo, s.sender,
		s.Config.Email.From, s.Config.Email.AppURL, s.Config.API.JWTSigningKey)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	return v1.NewAuthHandler(s.Config.API, s.newAuthService(db))
}

func (s *Server) initWorkspaceHandler(db *gorm.DB) *v1.WorkspaceHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	cityRepo := repository.NewCityRepository(dao.NewCityDAO(db))
	svc := service.NewWorkspaceService(s.newAuthService(db), userRepo, cityRepo)

	return v1.NewWorkspaceHandler(svc)
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(userRepo, s.sender,
		s.Config.Email.From, s.Config.Email.AppURL, s.Config.API.JWTSigningKey)

	return v1.NewUserHandler(svc, s.newAuthService(db))
}

func (s *Server) initCityHandler(db *gorm.DB) *v1.CityHandler {
	cityRepo := repository.NewCityRepository(dao.NewCityDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewCityService(cityRepo, eventRepo)

	return v1.NewCityHandler(svc)
}

func (s *Server) initSpeakerHandler(db *gorm.DB) *v1.SpeakerHandler {
	repo := repository.NewSpeakerRepository(dao.NewSpeakerDAO(db))
	svc := service.NewSpeakerService(repo)

	return v1.NewSpeakerHandler(svc)
}

func (s *Server) initVenueHandler(db *gorm.DB) *v1.VenueHandler {
	repo := repository.NewVenueRepository(dao.NewVenueDAO(db))
	cityRepo := repository.NewCityRepository(dao.NewCityDAO(db))
	svc := service.NewVenueService(repo, cityRepo)

	return v1.NewVenueHandler(svc)
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	repo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewEventService(repo)

	return v1.NewEventHandler(svc)
}

func (s *Server) initOrderHandler(db *gorm.DB) *v1.OrderHandler {
	types := repository.NewOrderTypeRepository(dao.NewOrderTypeDAO(db))
	orders := repository.NewEventOrderRepository(dao.NewEventOrderDAO(db))
	events := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewOrderService(types, orders, events)

	return v1.NewOrderHandler(svc)
}

func (s *Server) initExpenseHandler(db *gorm.DB) *v1.ExpenseHandler {
	repo := repository.NewExpenseRequestRepository(dao.NewExpenseRequestDAO(db))
	svc := service.NewExpenseService(repo, s.store)

	return v1.NewExpenseHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	workspaceHandler *v1.WorkspaceHandler,
	userHandler *v1.UserHandler,
	cityHandler *v1.CityHandler,
	speakerHandler *v1.SpeakerHandler,
	venueHandler *v1.VenueHandler,
	eventHandler *v1.EventHandler,
	orderHandler *v1.OrderHandler,
	expenseHandler *v1.ExpenseHandler,
	fileHandler *v1.FileHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/auth/register", authHandler.HandleRegister)
		public.POST("/auth/verify-email", authHandler.HandleVerifyEmail)
		public.POST("/auth/forgot-password", authHandler.HandleForgotPassword)
		public.POST("/auth/reset-password", authHandler.HandleResetPassword)
		public.GET("/auth/cities", authHandler.HandleRegistrationCities)
		public.GET("/files", fileHandler.HandleDownload)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/me", authHandler.HandleGetMe)
		authed.PUT("/me", authHandler.HandleUpdateMe)
		authed.PUT("/me/password", authHandler.HandleChangeMyPassword)
		authed.GET("/me/workspace", workspaceHandler.HandleGetWorkspace)
		authed.PUT("/me/city", workspaceHandler.HandleSelectCity)

		authed.POST("/users", userHandler.HandleCreateUser)
		authed.GET("/users", userHandler.HandleListUsers)
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.PUT("/users/:userID", userHandler.HandleUpdateUser)
		authed.DELETE("/users/:userID", userHandler.HandleDeleteUser)
		authed.POST("/users/:userID/reset-password", userHandler.HandleResetPassword)
		authed.POST("/users/:userID/verify-email", userHandler.HandleVerifyUserEmail)

		authed.POST("/cities", cityHandler.HandleCreateCity)
		authed.GET("/cities", cityHandler.HandleListCities)
		authed.GET("/cities/:cityID", cityHandler.HandleGetCity)
		authed.PUT("/cities/:cityID", cityHandler.HandleUpdateCity)
		authed.DELETE("/cities/:cityID", cityHandler.HandleDeleteCity)

		authed.POST("/speakers", speakerHandler.HandleCreateSpeaker)
		authed.GET("/speakers", speakerHandler.HandleListSpeakers)
		authed.GET("/speakers/:speakerID", speakerHandler.HandleGetSpeaker)
		authed.PUT("/speakers/:speakerID", speakerHandler.HandleUpdateSpeaker)
		authed.DELETE("/speakers/:speakerID", speakerHandler.HandleDeleteSpeaker)

		authed.POST("/venues", venueHandler.HandleCreateVenue)
		authed.GET("/venues", venueHandler.HandleListVenues)
		authed.GET("/venues/:venueID", venueHandler.HandleGetVenue)
		authed.PUT("/venues/:venueID", venueHandler.HandleUpdateVenue)
		authed.DELETE("/venues/:venueID", venueHandler.HandleDeleteVenue)

		authed.GET("/events/calendar", eventHandler.HandleCalendar)
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events", eventHandler.HandleListEvents)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authed.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		authed.POST("/events/:eventID/attendance", eventHandler.HandleConfirmAttendance)
		authed.DELETE("/events/:eventID/attendance", eventHandler.HandleCancelAttendance)

		authed.POST("/order-types", orderHandler.HandleCreateOrderType)
		authed.GET("/order-types", orderHandler.HandleListOrderTypes)
		authed.PUT("/order-types/:orderTypeID", orderHandler.HandleUpdateOrderType)
		authed.DELETE("/order-types/:orderTypeID", orderHandler.HandleDeleteOrderType)

		authed.POST("/orders", orderHandler.HandleCreateOrder)
		authed.GET("/orders", orderHandler.HandleListOrders)
		authed.GET("/orders/:orderID", orderHandler.HandleGetOrder)
		authed.PUT("/orders/:orderID", orderHandler.HandleUpdateOrder)
		authed.DELETE("/orders/:orderID", orderHandler.HandleDeleteOrder)

		authed.POST("/expense-requests", expenseHandler.HandleCreateExpenseRequest)
		authed.GET("/expense-requests", expenseHandler.HandleListExpenseRequests)
		authed.GET("/expense-requests/:requestID", expenseHandler.HandleGetExpenseRequest)
		authed.PUT("/expense-requests/:requestID", expenseHandler.HandleUpdateExpenseRequest)
		authed.DELETE("/expense-requests/:requestID", expenseHandler.HandleDeleteExpenseRequest)
		authed.POST("/expense-requests/:requestID/attachments", expenseHandler.HandleUploadAttachments)
		authed.DELETE("/expense-requests/:requestID/attachments", expenseHandler.HandleRemoveAttachment)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "CenterThink API"
	docs.SwaggerInfo.Description = "Multi-city event management API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
