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

	"pgfinder/auth"
	"pgfinder/db"
	"pgfinder/globals"
	"pgfinder/pgs"
	"pgfinder/rdx"
	"pgfinder/routes"
	"pgfinder/storage"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
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

func setupRouter(pgsHandler *pgs.Handler, authHandler *auth.Handler, uploadDir string) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddPGRoutes(router, pgsHandler)
	routes.AddAdminRoutes(router, authHandler)
	routes.AddWebRoutes(router)
	if uploadDir != "" {
		routes.AddStaticRoutes(router, uploadDir)
	}

	return router
}

// buildStore selects the media backend from the environment. The disk
// backend also returns its directory so the router can serve it.
func buildStore(ctx context.Context, baseURL string) (storage.Store, string, error) {
	if os.Getenv("MEDIA_BACKEND") == "s3" {
		store, err := storage.NewS3Store(ctx,
			os.Getenv("S3_REGION"),
			os.Getenv("S3_BUCKET"),
			os.Getenv("S3_ENDPOINT"),
			os.Getenv("S3_PUBLIC_BASE_URL"),
		)
		return store, "", err
	}

	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	store, err := storage.NewDiskStore(dir, baseURL)
	return store, dir, err
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":5000"
	} else if port[0] != ':' {
		port = ":" + port
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	globals.JwtSecret = []byte(secret)

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://127.0.0.1:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "pgfinder"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Connect(ctx, mongoURI, dbName); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	rdx.Init(os.Getenv("REDIS_ADDR"))

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost" + port
	}

	store, uploadDir, err := buildStore(ctx, baseURL)
	if err != nil {
		log.Fatalf("Failed to set up media storage: %v", err)
	}

	pgsHandler := pgs.NewHandler(pgs.NewMongoRepo(db.PGCollection), store)
	authHandler := auth.NewHandler(auth.NewMongoAdminRepo(db.AdminCollection))

	router := setupRouter(pgsHandler, authHandler, uploadDir)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       60 * time.Second, // uploads can be slow
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	if err := db.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
