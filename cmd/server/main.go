package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"shutterbook/internal/api"
	"shutterbook/internal/auth"
	"shutterbook/internal/db"
	"shutterbook/internal/directory"
	"shutterbook/internal/metrics"
	"shutterbook/internal/repository"
	"shutterbook/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	loc := studioLocation()

	dirClient := directory.NewClient(getenvDefault("DIRECTORY_URL", "http://localhost:8888"), 5*time.Second)

	availabilityRepo := repository.NewAvailabilityRepository(database)
	bookingRepo := repository.NewBookingRepository(database)

	availabilitySvc := service.NewAvailabilityService(availabilityRepo)
	sender := service.NewSenderService(loc)
	bookingSvc := service.NewBookingService(bookingRepo, availabilitySvc, dirClient, sender)
	reaper := service.NewReaperService(availabilityRepo, service.SystemClock{}, loc)

	availabilityHandler := api.NewAvailabilityHandler(availabilitySvc, reaper)
	bookingHandler := api.NewBookingHandler(bookingSvc, availabilitySvc)

	httpMetrics := metrics.New("shutterbook")

	r := mux.NewRouter()
	r.Use(httpMetrics.Middleware)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()

	// Public endpoints
	apiRouter.HandleFunc("/booking/{date}", availabilityHandler.GetSlotsByDate).Methods("GET")
	apiRouter.HandleFunc("/booking-dates", availabilityHandler.GetAvailableDates).Methods("GET")

	// Client endpoints (authenticated)
	client := apiRouter.NewRoute().Subrouter()
	client.Use(auth.VerifyToken)
	client.HandleFunc("/client/book", bookingHandler.BookSlot).Methods("POST")
	client.HandleFunc("/client/bookings", bookingHandler.ListMyBookings).Methods("GET")
	client.HandleFunc("/client/bookings/{id}", bookingHandler.CancelBooking).Methods("DELETE")
	client.HandleFunc("/bookings/restore", bookingHandler.RestoreSlot).Methods("PUT")

	// Admin endpoints (authenticated + admin role)
	admin := apiRouter.PathPrefix("/admin").Subrouter()
	admin.Use(auth.VerifyToken)
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/booking", availabilityHandler.PublishAvailability).Methods("POST")
	admin.HandleFunc("/booking", availabilityHandler.ListAvailability).Methods("GET")
	admin.HandleFunc("/booking/{id:[0-9]+}", availabilityHandler.UpdateAvailability).Methods("PUT")
	admin.HandleFunc("/booking/{id:[0-9]+}", availabilityHandler.DeleteAvailability).Methods("DELETE")
	admin.HandleFunc("/booking/{date}", availabilityHandler.GetSlotsByDate).Methods("GET")
	admin.HandleFunc("/bookings", bookingHandler.ListAllBookings).Methods("GET")

	// Daily cleanup of expired availability at midnight studio time
	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddFunc("0 0 * * *", func() {
		log.Println("Running daily availability cleanup")
		if err := reaper.Run(); err != nil {
			log.Printf("Daily cleanup failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule daily cleanup: %v", err)
	}
	scheduler.Start()

	origins := strings.Split(getenvDefault("CORS_ORIGINS", "http://localhost:5173"), ",")
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.ExposedHeaders([]string{"Content-Range", "X-Content-Range"}),
		handlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler(r)))
}

func studioLocation() *time.Location {
	name := getenvDefault("STUDIO_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid STUDIO_TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
