package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"kembara/internal/api"
	"kembara/internal/auth"
	"kembara/internal/config"
	"kembara/internal/repository"
	"kembara/internal/service"
)

func main() {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	jobRepo := repository.NewJobRepository(db)

	notifySvc := service.NewNotifyService(cfg.SendGrid, cfg.Twilio)
	hitpaySvc := service.NewHitPayService(cfg.HitPay)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	bookingSvc := service.NewBookingService(bookingRepo, catalogRepo, userRepo, notifySvc)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo, userRepo, hitpaySvc, notifySvc, cfg.AppURL)
	leadSvc := service.NewLeadService(leadRepo, userRepo)
	adminSvc := service.NewAdminService(catalogRepo)
	jobSvc := service.NewJobService(jobRepo, time.Duration(cfg.PendingPaymentMaxAgeHours)*time.Hour)

	authHandler := api.NewAuthHandler(authSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	paymentHandler := api.NewPaymentHandler(paymentSvc)
	leadHandler := api.NewLeadHandler(leadSvc)
	adminHandler := api.NewAdminHandler(adminSvc)
	webhookHandler := api.NewHitPayWebhookHandler(cfg.HitPay.WebhookSecret, paymentSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/webhooks/hitpay", webhookHandler.HandleWebhook).Methods("POST")

	// Authenticated endpoints
	app := r.PathPrefix("/api").Subrouter()
	app.Use(auth.Middleware(cfg.JWTSecret))
	app.HandleFunc("/pricing-data", bookingHandler.PricingData).Methods("GET")
	app.HandleFunc("/quotes/calculate", bookingHandler.CalculateQuote).Methods("POST")
	app.HandleFunc("/customers", bookingHandler.ListCustomers).Methods("GET")
	app.HandleFunc("/leads", leadHandler.Create).Methods("POST")
	app.HandleFunc("/leads", leadHandler.List).Methods("GET")
	app.HandleFunc("/leads/{id}/status", leadHandler.UpdateStatus).Methods("PUT")
	app.HandleFunc("/leads/{id}/assign", leadHandler.Assign).Methods("PUT")
	app.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	app.HandleFunc("/bookings", bookingHandler.List).Methods("GET")
	app.HandleFunc("/bookings/{id}", bookingHandler.Get).Methods("GET")
	app.HandleFunc("/bookings/{id}/quote", bookingHandler.MarkQuoted).Methods("POST")
	app.HandleFunc("/bookings/{id}/confirm", bookingHandler.Confirm).Methods("POST")
	app.HandleFunc("/bookings/{id}/cancel", bookingHandler.Cancel).Methods("POST")
	app.HandleFunc("/bookings/{id}/status", bookingHandler.UpdateStatus).Methods("PUT")
	app.HandleFunc("/bookings/{id}/payments", paymentHandler.ListByBooking).Methods("GET")
	app.HandleFunc("/bookings/{id}/pay", paymentHandler.CreateCheckout).Methods("POST")
	app.HandleFunc("/payments", paymentHandler.Record).Methods("POST")
	app.HandleFunc("/payments", paymentHandler.ListAll).Methods("GET")
	app.HandleFunc("/payments/{id}/status", paymentHandler.UpdateStatus).Methods("PUT")

	// Admin endpoints
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.Middleware(cfg.JWTSecret))
	admin.HandleFunc("/users", authHandler.CreateStaff).Methods("POST")
	admin.HandleFunc("/vehicles", adminHandler.ListVehicles).Methods("GET")
	admin.HandleFunc("/vehicles", adminHandler.CreateVehicle).Methods("POST")
	admin.HandleFunc("/vehicles/{id}", adminHandler.UpdateVehicle).Methods("PUT")
	admin.HandleFunc("/vehicles/{id}", adminHandler.DeleteVehicle).Methods("DELETE")
	admin.HandleFunc("/price-rules", adminHandler.CreatePriceRule).Methods("POST")
	admin.HandleFunc("/price-rules/{id}", adminHandler.DeletePriceRule).Methods("DELETE")
	admin.HandleFunc("/holidays", adminHandler.CreateHoliday).Methods("POST")
	admin.HandleFunc("/holidays/{id}", adminHandler.DeleteHoliday).Methods("DELETE")
	admin.HandleFunc("/one-way-fees", adminHandler.CreateOneWayFee).Methods("POST")
	admin.HandleFunc("/one-way-fees/{id}", adminHandler.DeleteOneWayFee).Methods("DELETE")

	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := jobSvc.CompleteFinishedBookings(); err != nil {
			log.Printf("cron: complete finished bookings: %v", err)
		}
	})
	c.AddFunc("@hourly", func() {
		if err := jobSvc.ExpireStalePayments(); err != nil {
			log.Printf("cron: expire stale payments: %v", err)
		}
	})
	c.Start()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.AppURL}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
