package main

import (
	"fmt"
	"net/http"
	"os"

	"fedvlm/api/contexts"
	gam "fedvlm/api/middleware"
	"fedvlm/api/models"
	serviceInfo "fedvlm/api/models/constants/service-info"
	"fedvlm/api/models/nodes"
	genesMvc "fedvlm/api/mvc/genes"
	nodesMvc "fedvlm/api/mvc/nodes"
	searchMvc "fedvlm/api/mvc/search"
	serviceInfoMvc "fedvlm/api/mvc/service-info"
	sessionsMvc "fedvlm/api/mvc/sessions"
	variantsMvc "fedvlm/api/mvc/variants"
	"fedvlm/api/repositories/network"
	"fedvlm/api/services/query"
	"fedvlm/api/services/sanitation"
	"fedvlm/api/services/sessions"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	var zl *zap.Logger
	if cfg.Debug {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	logger.Infow("using configuration",
		"debug", cfg.Debug,
		"variantEndpoint", cfg.Network.VariantEndpoint,
		"geneEndpoint", cfg.Network.GeneEndpoint,
		"requestTimeout", cfg.Network.RequestTimeout,
		"maxRetries", cfg.Network.MaxRetries,
		"useMockNetwork", cfg.Network.UseMock,
		"registryPath", cfg.Registry.Path,
		"cacheCapacity", cfg.Cache.Capacity,
		"sessionIdleTimeout", cfg.Sessions.IdleTimeout,
		"port", cfg.Api.Port)

	// Node registry
	registry := nodes.DefaultRegistry()
	if cfg.Registry.Path != "" {
		registry, err = nodes.LoadRegistry(cfg.Registry.Path)
		if err != nil {
			logger.Fatalw("unable to load node registry", "error", err)
		}
	}

	// Network transport
	var fetcher network.Fetcher
	if cfg.Network.UseMock {
		fetcher = network.NewMockFetcher()
	} else {
		fetcher = network.NewHttpFetcher(&cfg, nil)
	}

	// Service Singletons
	qc := query.NewClient(fetcher, cfg.Cache.Capacity, logger)
	ss := sessions.NewSessionService(qc, logger)
	sz := sanitation.NewSanitationService(ss, &cfg, logger)
	defer sz.Stop()

	e := newServer(&cfg, logger, registry, qc, ss)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}

// newServer wires the routes onto a fresh echo instance.
func newServer(cfg *models.Config, logger *zap.SugaredLogger, registry *nodes.Registry, qc *query.Client, ss *sessions.SessionService) *echo.Echo {
	// Instantiate Server
	e := echo.New()
	e.HideBanner = true

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with a custom context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.VlmContext{
				Context:        c,
				Config:         cfg,
				Log:            logger,
				Registry:       registry,
				QueryClient:    qc,
				SessionService: ss,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, serviceInfo.SERVICE_WELCOME)
	})
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// -- Search
	e.GET("/search", searchMvc.SearchRedirect,
		// middleware
		gam.MandateSearchTermAttribute)

	e.GET("/variant/:variantId", variantsMvc.VariantsGetByVariantId,
		// middleware
		gam.MandateVariantIdParameter,
		gam.CalibrateOptionalExcludedNodes)
	e.GET("/gene/:geneSymbol", genesMvc.GenesGetByGeneSymbol,
		// middleware
		gam.MandateGeneSymbolParameter,
		gam.CalibrateOptionalExcludedNodes)

	// -- Nodes
	e.GET("/nodes", nodesMvc.NodesGet)

	// -- Sessions
	e.POST("/sessions", sessionsMvc.SessionsCreate)
	e.GET("/sessions/:sessionId", sessionsMvc.SessionsGet,
		gam.MandateSession)
	e.DELETE("/sessions/:sessionId", sessionsMvc.SessionsDelete,
		gam.MandateSession)
	e.PUT("/sessions/:sessionId/query", sessionsMvc.SessionsSubmitQuery,
		gam.MandateSession,
		gam.MandateSearchTermAttribute)
	e.POST("/sessions/:sessionId/nodes/exclude-all", sessionsMvc.SessionsExcludeAllNodes,
		gam.MandateSession)
	e.POST("/sessions/:sessionId/nodes/exclude-none", sessionsMvc.SessionsExcludeNoNodes,
		gam.MandateSession)
	e.POST("/sessions/:sessionId/nodes/:nodeId/toggle", sessionsMvc.SessionsToggleNode,
		gam.MandateSession)

	return e
}
