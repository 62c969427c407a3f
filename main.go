package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"

	"stickerbingo/internal/imagegen"
)

const (
	cleanupInterval       = 10 * time.Minute
	defaultStoreRetention = 30 * 24 * time.Hour
)

func main() {
	_ = godotenv.Load()

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	setupLogger(getEnv("LOG_LEVEL", "info"), isProduction)
	zerolog.DefaultContextLogger = &log.Logger
	logInfo("Starting Sticker Bingo in %s mode", map[bool]string{true: "production", false: "development"}[isProduction])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApp(ctx, isProduction)
	if err != nil {
		logFatal("Failed to initialise: %v", err)
	}
	defer app.Store.Close()

	router := app.setupRouter()
	go app.runCleanupLoop(ctx, cleanupInterval)

	startServer(router)
}

// newApp builds the application from the environment.
func newApp(ctx context.Context, isProduction bool) (*App, error) {
	sessionTimeout := getEnvDuration("SESSION_TIMEOUT", 2*time.Hour)
	retention := getEnvDuration("STORE_RETENTION", defaultStoreRetention)
	store, err := openStore(ctx, storeConfigFromEnv(retention))
	if err != nil {
		return nil, err
	}
	images, err := newImageService(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &App{
		Sessions:       make(map[string]*sessionEntry),
		LimiterMap:     make(map[string]*rate.Limiter),
		Store:          store,
		Images:         images,
		Hub:            NewHub(),
		IsProduction:   isProduction,
		SessionTimeout: sessionTimeout,
		StoreRetention: retention,
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", retention),
		StaticCacheAge: getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		StartTime:      time.Now(),
	}, nil
}

// newImageService selects the image backend from IMAGE_BACKEND.
func newImageService(ctx context.Context) (imagegen.Service, error) {
	switch backend := strings.ToLower(getEnv("IMAGE_BACKEND", "pollinations")); backend {
	case "gemini":
		project := os.Getenv("GCP_PROJECT_ID")
		if project == "" {
			return nil, errors.New("IMAGE_BACKEND=gemini requires GCP_PROJECT_ID")
		}
		g, err := imagegen.NewGemini(ctx, project, os.Getenv("GCP_REGION"))
		if err != nil {
			return nil, err
		}
		logInfo("Generating images with Imagen on project %s", project)
		return g, nil
	case "pollinations":
		verify := getEnvBool("IMAGE_VERIFY", false)
		logInfo("Generating images with Pollinations (verify=%t)", verify)
		return imagegen.NewPollinations(verify, getEnvDuration("IMAGE_TIMEOUT", 20*time.Second)), nil
	default:
		return nil, errors.New("unknown IMAGE_BACKEND " + backend)
	}
}

// setupRouter wires middleware, assets and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), accessLogMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts", RouteEvents})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(func(c *gin.Context) {
		applyCacheHeaders(c, app.IsProduction, app.StaticCacheAge)
	})

	if app.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logInfo("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	limited := app.rateLimitMiddleware()

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteHealth, app.healthHandler)
	router.GET(RouteEvents, app.eventsHandler)

	router.GET(RouteState, app.stateHandler)
	router.POST(RouteReveal, limited, app.revealHandler)
	router.POST(RouteTileClick, limited, app.tileClickHandler)
	router.POST(RouteTilePress, limited, app.tilePressHandler)
	router.POST(RouteTileReveal, limited, app.tileRevealHandler)
	router.POST(RouteEditMode, limited, app.editModeHandler)
	router.PUT(RouteHeader, limited, app.headerHandler)
	router.POST(RouteNewGame, limited, app.newGameHandler)

	router.GET(RouteSaves, app.savesHandler)
	router.POST(RouteSaves, limited, app.saveHandler)
	router.POST(RouteLoad, limited, app.loadHandler)
	router.PATCH(RouteSave, limited, app.renameHandler)
	router.DELETE(RouteSave, limited, app.deleteHandler)

	return router
}

func startServer(router *gin.Engine) {
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

func applyCacheHeaders(c *gin.Context, production bool, staticAge time.Duration) {
	if production && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(staticAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
