package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/handler/api"
	"rental-backoffice/internal/handler/middleware"
	"rental-backoffice/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	fx.In

	Auth        *api.AuthHandler
	Properties  *api.PropertyHandler
	Guests      *api.GuestHandler
	Bookings    *api.BookingHandler
	Archive     *api.ArchiveHandler
	Tasks       *api.TaskHandler
	Finance     *api.FinanceHandler
	Automations *api.AutomationHandler

	AuthMiddleware *middleware.AuthMiddleware
	LoginLimiter   *middleware.RateLimiter
	Logger         *middleware.Logger
}

var (
	office    = []user.Role{user.RoleAdmin, user.RoleAssistant}
	adminOnly = []user.Role{user.RoleAdmin}
	fieldTeam = []user.Role{user.RoleAdmin, user.RoleAssistant, user.RoleCleaner, user.RoleMaintenance}
)

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg, h.Logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
	engine.MaxMultipartMemory = cfg.Server.MaxUploadBytes
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authMw := h.AuthMiddleware
	requireRole := func(roles []user.Role) []gin.HandlerFunc {
		return []gin.HandlerFunc{authMw.RequireRole(roles...)}
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{h.LoginLimiter.Limit()}},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMw.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		secured := apiGroup.Group("")
		secured.Use(authMw.RequireAuth())

		addRoutes(secured.Group("/properties"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Properties.Create, Mw: requireRole(adminOnly)},
			{Method: http.MethodGet, Path: "", Handler: h.Properties.List, Mw: requireRole(fieldTeam)},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Properties.Get, Mw: requireRole(fieldTeam)},
			{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Properties.SetStatus, Mw: requireRole(adminOnly)},
			{Method: http.MethodPost, Path: "/:id/units", Handler: h.Properties.AddUnit, Mw: requireRole(adminOnly)},
		})

		guests := secured.Group("/guests")
		guests.Use(authMw.RequireRole(office...))
		addRoutes(guests, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Guests.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Guests.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Guests.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Guests.Update},
			{Method: http.MethodPost, Path: "/:id/archive", Handler: h.Guests.Archive, Mw: requireRole(adminOnly)},
			{Method: http.MethodPost, Path: "/:id/restore", Handler: h.Guests.Restore, Mw: requireRole(adminOnly)},
		})

		bookings := secured.Group("/bookings")
		bookings.Use(authMw.RequireRole(office...))
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Bookings.List},
			{Method: http.MethodPost, Path: "/conflicts", Handler: h.Bookings.CheckConflict},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Bookings.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Bookings.Delete, Mw: requireRole(adminOnly)},
			{Method: http.MethodPost, Path: "/:id/check-in", Handler: h.Bookings.CheckIn},
			{Method: http.MethodPost, Path: "/:id/check-out", Handler: h.Bookings.CheckOut},
			{Method: http.MethodPost, Path: "/:id/archive", Handler: h.Bookings.Archive, Mw: requireRole(adminOnly)},
			{Method: http.MethodPost, Path: "/:id/restore", Handler: h.Bookings.Restore, Mw: requireRole(adminOnly)},
			{Method: http.MethodGet, Path: "/:id/events", Handler: h.Bookings.Events},
			{Method: http.MethodPost, Path: "/:id/documents", Handler: h.Bookings.UploadDocument},
			{Method: http.MethodGet, Path: "/:id/voucher.pdf", Handler: h.Bookings.Voucher},
		})

		addRoutes(secured.Group("/archive"), []route{
			{Method: http.MethodDelete, Path: "/:table/:id", Handler: h.Archive.PermanentlyDelete, Mw: requireRole(adminOnly)},
		})

		// Field roles reach the task routes; the commands decide what each may change.
		addRoutes(secured.Group("/cleaning-tasks"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Tasks.CreateCleaning, Mw: requireRole(office)},
			{Method: http.MethodGet, Path: "", Handler: h.Tasks.ListCleaning},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Tasks.UpdateCleaning},
			{Method: http.MethodPost, Path: "/:id/resolve", Handler: h.Tasks.ResolveCleaning},
		})
		addRoutes(secured.Group("/maintenance-tasks"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Tasks.CreateMaintenance, Mw: requireRole(office)},
			{Method: http.MethodGet, Path: "", Handler: h.Tasks.ListMaintenance},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Tasks.UpdateMaintenance},
			{Method: http.MethodPost, Path: "/:id/resolve", Handler: h.Tasks.ResolveMaintenance},
		})

		finance := secured.Group("/finance-records")
		finance.Use(authMw.RequireRole(office...))
		addRoutes(finance, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Finance.List},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Finance.Update},
		})

		automations := secured.Group("/automations")
		automations.Use(authMw.RequireRole(adminOnly...))
		addRoutes(automations, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Automations.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Automations.List},
			{Method: http.MethodPost, Path: "/trigger", Handler: h.Automations.Trigger},
			{Method: http.MethodPost, Path: "/import", Handler: h.Automations.Import},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Automations.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Automations.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Automations.Delete},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
