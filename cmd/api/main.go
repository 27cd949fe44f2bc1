package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/claimconnect/leadcore/internal/infra/database"
	"github.com/claimconnect/leadcore/internal/infra/http/handlers"
	"github.com/claimconnect/leadcore/internal/infra/http/middleware"
	"github.com/claimconnect/leadcore/internal/infra/integration/sheets"
	"github.com/claimconnect/leadcore/internal/infra/mail"
	"github.com/claimconnect/leadcore/internal/infra/queue"
	"github.com/claimconnect/leadcore/internal/infra/token"
	"github.com/claimconnect/leadcore/internal/infra/worker"
	"github.com/claimconnect/leadcore/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		getenv("RABBITMQ_USER", "guest"),
		getenv("RABBITMQ_PASS", "guest"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	codeRepo := database.NewCodeRepository(db)
	leadRepo := database.NewLeadRepository(db)
	clientRepo := database.NewClientRepository(db)
	deliveryRepo := database.NewDeliveryRepository(db)

	// 2. Outbound adapters
	mailPort, _ := strconv.Atoi(getenv("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		mailPort,
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		getenv("MAIL_FROM", "verify@claimconnect.io"),
	)
	sheetsClient := sheets.NewClient()
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// 3. Use cases
	limiter := usecase.NewRateLimiter(codeRepo)
	issueUC := usecase.NewIssueCodeUseCase(codeRepo, limiter, mailSender)
	verifyUC := usecase.NewVerifyCodeUseCase(codeRepo, leadRepo, token.UUIDIssuer{}, producer)
	deliverUC := usecase.NewDeliverLeadUseCase(leadRepo, clientRepo, mailSender, sheetsClient)
	disputeUC := usecase.NewDisputeLeadUseCase(leadRepo, deliveryRepo)
	replaceUC := usecase.NewReplaceLeadUseCase(leadRepo, deliveryRepo)

	// 4. Background workers
	assignWorker := queue.NewWorker(rabbitMQ.Ch, clientRepo, deliverUC)
	go assignWorker.Start(queue.QueueName)

	reconciler := worker.NewReconciliationWorker(leadRepo)
	go reconciler.Start(context.Background())

	// 5. Handlers
	codeHandler := handlers.NewCodeHandler(issueUC, verifyUC)
	deliveryHandler := handlers.NewDeliveryHandler(deliverUC, disputeUC, replaceUC, deliveryRepo)
	clientHandler := handlers.NewClientHandler(clientRepo)
	statsHandler := handlers.NewStatsHandler(leadRepo, codeRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{getenv("FUNNEL_ORIGIN", "http://localhost:5173")},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/codes", codeHandler.HandleIssue)
	r.Post("/codes/verify", codeHandler.HandleVerify)
	r.Post("/deliveries", deliveryHandler.HandleDeliver)
	r.Post("/leads/{leadID}/dispute", deliveryHandler.HandleDispute)
	r.Post("/leads/{leadID}/replace", deliveryHandler.HandleReplace)
	r.Get("/leads/{leadID}/deliveries", deliveryHandler.HandleAudit)
	r.Post("/clients", clientHandler.HandleCreate)
	r.Get("/clients/{clientID}", clientHandler.HandleGet)
	r.Post("/clients/{clientID}/balance", clientHandler.HandleAddBalance)
	r.Get("/stats/leads", statsHandler.HandleLeadStats)
	r.Get("/stats/codes", statsHandler.HandleCodeStats)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + getenv("PORT", "8080")
	log.Printf("leadcore API listening on %s", port)
	http.ListenAndServe(port, r)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
