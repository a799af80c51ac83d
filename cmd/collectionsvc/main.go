package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	configs "github.com/pokebinder/binder-services/configs"
	"github.com/pokebinder/binder-services/internal/collectionsvc/catalog"
	"github.com/pokebinder/binder-services/internal/collectionsvc/config"
	"github.com/pokebinder/binder-services/internal/collectionsvc/db"
	handlers "github.com/pokebinder/binder-services/internal/collectionsvc/handlers"
	"github.com/pokebinder/binder-services/internal/collectionsvc/service"
	"github.com/pokebinder/binder-services/internal/collectionsvc/store"
	"github.com/pokebinder/binder-services/internal/collectionsvc/vision"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "collection"

var instanceId string

func init() {
	instanceId = "001"
	configs.Logging(SERVICE_NAME + "_service_" + instanceId)
	configs.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// pg connection
	dbpool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	userStore := store.NewUserStore(dbpool)
	userService := service.NewUserService(userStore)

	cardStore := store.NewCardStore(dbpool)
	catalogClient := catalog.NewClient(cfg.TCGdexBaseURL)
	cardService := service.NewCardService(cardStore, catalogClient)

	visionService := vision.New(cfg.AnthropicAPIKey)

	// Setup router
	r := chi.NewRouter()
	c := configs.CORS(cfg.AllowedOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(configs.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(userService, cardService, catalogClient, visionService)
	h.InitAuth(cfg.JWTSecretKey)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.ServicePort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
