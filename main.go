package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/auth"
	"medibook/booking"
	"medibook/config"
	"medibook/db"
	"medibook/doctors"
	"medibook/middleware"
	"medibook/pay"
	"medibook/ratelim"
	"medibook/rdx"
	"medibook/receipt"
	"medibook/routes"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg config.Config, store *db.Mongo, sessions *rdx.Client) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)
	router.GET("/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"result": true})
	})

	mw := middleware.NewAuth(cfg.JWTSecret, store)
	rateLimiter := ratelim.NewRateLimiter()
	bookingStore := booking.NewMongoStore(store)

	authHandler := auth.NewHandler(store, sessions, cfg.JWTSecret)
	bookingHandler := booking.NewHandler(bookingStore, sessions)
	receiptHandler := receipt.NewHandler(bookingStore, cfg.JWTSecret)
	doctorHandler := doctors.NewHandler(store, cfg.UploadDir)
	payHandler := pay.NewHandler(store, cfg.StripeSecret)

	routes.AddAuthRoutes(router, authHandler, mw)
	routes.AddBookingRoutes(router, bookingHandler, receiptHandler, mw, rateLimiter)
	routes.AddDoctorRoutes(router, doctorHandler, mw)
	routes.AddPayRoutes(router, payHandler, mw, rateLimiter)

	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := db.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	sessions := rdx.New(cfg.RedisAddr)

	router := setupRouter(cfg, store, sessions)

	// relay booking events to websocket subscribers
	eventCtx, stopEvents := context.WithCancel(context.Background())
	go sessions.SubscribeBookingEvents(eventCtx, booking.BroadcastUpdate)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	stopEvents()
	if err := sessions.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}

	log.Println("Server stopped cleanly")
}
