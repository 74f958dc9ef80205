package router

import (
	"time"

	catalogapp "github.com/Darkingtail/mall4r/internal/application/catalog"
	deliveryapp "github.com/Darkingtail/mall4r/internal/application/delivery"
	identityapp "github.com/Darkingtail/mall4r/internal/application/identity"
	marketingapp "github.com/Darkingtail/mall4r/internal/application/marketing"
	memberapp "github.com/Darkingtail/mall4r/internal/application/member"
	regionapp "github.com/Darkingtail/mall4r/internal/application/region"
	tradeapp "github.com/Darkingtail/mall4r/internal/application/trade"
	"github.com/Darkingtail/mall4r/internal/application/upload"
	"github.com/Darkingtail/mall4r/internal/infrastructure/auth"
	"github.com/Darkingtail/mall4r/internal/infrastructure/config"
	"github.com/Darkingtail/mall4r/internal/infrastructure/logger"
	"github.com/Darkingtail/mall4r/internal/infrastructure/persistence"
	"github.com/Darkingtail/mall4r/internal/infrastructure/telemetry"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/handler"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// multipartOverhead is added to the upload size limit for form boundaries
// and headers
const multipartOverhead = 1 << 20

// Options carries what the admin API is built from
type Options struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *gorm.DB
	Blacklist auth.TokenBlacklist
	Storage   upload.ObjectStorage
	// Metrics may be nil, which disables request metrics and /metrics
	Metrics *telemetry.Metrics
}

// App is the assembled admin API
type App struct {
	Engine       *gin.Engine
	Repositories *persistence.Repositories
	JWT          *auth.JWTService
	Bootstrapper *identityapp.Bootstrapper
	Routes       []Route
	limiters     []*middleware.RateLimiter
}

// RunCleanup evicts idle rate limit buckets until stop is closed
func (a *App) RunCleanup(stop <-chan struct{}) {
	for _, l := range a.limiters {
		go l.RunCleanup(stop)
	}
}

// New wires repositories, services, handlers and middleware into a gin engine
func New(opts Options) *App {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	repos := persistence.NewRepositories(opts.DB)
	jwtService := auth.NewJWTService(cfg.JWT)
	h := newHandlers(opts, repos, jwtService, log)

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
			_ = engine.SetTrustedProxies(nil)
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	app := &App{
		Engine:       engine,
		Repositories: repos,
		JWT:          jwtService,
		Bootstrapper: identityapp.NewBootstrapper(repos.SysUser, repos.SysMenu, cfg.App.AdminPassword, log),
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(cfg.HTTP)),
		bodyLimit(cfg),
		middleware.Metrics(opts.Metrics, "/health", "/ready", cfg.Metrics.Path),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		app.limiters = append(app.limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
	}

	if cfg.Metrics.Enabled && opts.Metrics != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(opts.Metrics.Handler()))
	}

	var loginMiddleware []gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		app.limiters = append(app.limiters, limiter)
		loginMiddleware = append(loginMiddleware, middleware.RateLimit(limiter))
	}

	var publicRoutes, protectedRoutes []Route
	public := NewRouter(engine)
	for _, g := range PublicGroups(h, loginMiddleware...) {
		public.Register(g)
		publicRoutes = append(publicRoutes, g.Routes()...)
	}
	public.Setup()

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.TokenBlacklist = opts.Blacklist
	jwtCfg.CookieName = cfg.Cookie.Name
	jwtCfg.Logger = log
	permCfg := middleware.PermissionConfig{Logger: log}
	guard := func(permission string) gin.HandlerFunc {
		return middleware.RequireAnyPermissionWithConfig(permCfg, permission)
	}

	protected := NewRouter(engine, WithMiddleware(
		middleware.JWTAuthMiddlewareWithConfig(jwtCfg),
		middleware.TracingAttributeInjector(),
	))
	for _, g := range ProtectedGroups(h, guard) {
		protected.Register(g)
		protectedRoutes = append(protectedRoutes, g.Routes()...)
	}
	protected.Setup()

	app.Routes = append(publicRoutes, protectedRoutes...)
	if !cfg.IsProduction() {
		apiDocs.set(cfg.App.Name, publicRoutes, protectedRoutes)
		registerDocs(engine)
	}

	return app
}

func newHandlers(opts Options, repos *persistence.Repositories, jwtService *auth.JWTService, log *zap.Logger) *Handlers {
	cfg := opts.Config

	menuService := identityapp.NewMenuService(repos.SysMenu)
	authService := identityapp.NewAuthService(repos.SysUser, menuService, jwtService, opts.Blacklist, opts.Metrics, log)
	userService := identityapp.NewUserService(repos.SysUser, opts.Blacklist, cfg.JWT.RefreshTokenExpiration, log)
	uploadService := upload.NewService(opts.Storage, cfg.Upload, log, upload.WithRecorder(opts.Metrics))

	return &Handlers{
		Health:    handler.NewHealthHandler(opts.DB),
		Auth:      handler.NewAuthHandler(authService, cfg.Cookie),
		Area:      handler.NewAreaHandler(regionapp.NewAreaService(repos.Area, log)),
		PickAddr:  handler.NewPickAddrHandler(deliveryapp.NewPickAddrService(repos.PickAddr, repos.Area, log)),
		Transport: handler.NewTransportHandler(deliveryapp.NewTransportService(repos.Transport, log)),
		HotSearch: handler.NewHotSearchHandler(marketingapp.NewHotSearchService(repos.HotSearch)),
		IndexImg:  handler.NewIndexImgHandler(marketingapp.NewIndexImgService(repos.IndexImg, repos.Product)),
		Notice:    handler.NewNoticeHandler(marketingapp.NewNoticeService(repos.Notice, log)),
		Member:    handler.NewMemberHandler(memberapp.NewMemberService(repos.Member, log)),
		UserAddr:  handler.NewUserAddrHandler(memberapp.NewUserAddrService(repos.UserAddr, repos.Member)),
		Order:     handler.NewOrderHandler(tradeapp.NewOrderService(repos.Order, opts.Metrics, log)),
		Category:  handler.NewCategoryHandler(catalogapp.NewCategoryService(repos.Category, repos.Product, log)),
		Brand:     handler.NewBrandHandler(catalogapp.NewBrandService(repos.Brand)),
		Spec:      handler.NewPropHandler(catalogapp.NewSpecService(repos.Spec)),
		Attribute: handler.NewPropHandler(catalogapp.NewAttributeService(repos.Attribute)),
		ProdTag:   handler.NewProdTagHandler(catalogapp.NewProdTagService(repos.ProdTag)),
		ProdComm:  handler.NewProdCommHandler(catalogapp.NewProdCommService(repos.ProdComm, log)),
		Product:   handler.NewProductHandler(catalogapp.NewProductService(repos.Product, repos.Category, log)),
		SysUser:   handler.NewSysUserHandler(userService),
		SysRole:   handler.NewSysRoleHandler(identityapp.NewRoleService(repos.SysRole, log)),
		SysMenu:   handler.NewSysMenuHandler(menuService),
		Upload:    handler.NewUploadHandler(uploadService),
	}
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

// bodyLimit applies the JSON body limit everywhere except the upload
// endpoint, which is bounded by the upload size limit instead
func bodyLimit(cfg *config.Config) gin.HandlerFunc {
	standard := middleware.BodyLimit(cfg.HTTP.MaxBodySize)
	uploads := middleware.BodyLimit(cfg.Upload.MaxFileSize + multipartOverhead)
	return func(c *gin.Context) {
		if c.FullPath() == UploadPath {
			uploads(c)
			return
		}
		standard(c)
	}
}

// ShutdownTimeout bounds graceful shutdown of the HTTP server
const ShutdownTimeout = 30 * time.Second
