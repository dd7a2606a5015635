package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gabrielmpr/crmfunil/internal/infra/database"
	"github.com/gabrielmpr/crmfunil/internal/infra/http/handlers"
	"github.com/gabrielmpr/crmfunil/internal/infra/http/middleware"
	"github.com/gabrielmpr/crmfunil/internal/infra/mail"
	"github.com/gabrielmpr/crmfunil/internal/infra/queue"
	"github.com/gabrielmpr/crmfunil/internal/infra/storage"
	"github.com/gabrielmpr/crmfunil/internal/usecase"
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	// 1. Storage (DATABASE_URL liga o backend Postgres; senão, arquivos locais)
	var kv storage.KV
	if connString := os.Getenv("DATABASE_URL"); connString != "" {
		pg, err := storage.NewPostgresKV(connString)
		if err != nil {
			log.Fatalf("❌ Postgres indisponível: %v", err)
		}
		defer pg.Close()
		kv = pg
		log.Println("💾 Storage: Postgres")
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		fkv, err := storage.NewFileKV(dataDir)
		if err != nil {
			log.Fatalf("❌ Falha ao preparar diretório de dados: %v", err)
		}
		kv = fkv
		log.Printf("💾 Storage: arquivos em %s", dataDir)
	}

	// 2. Repositórios
	funnelRepo := database.NewFunnelRepository(kv)
	leadRepo := database.NewLeadRepository(kv)
	productRepo := database.NewProductRepository(kv)
	activityRepo := database.NewActivityRepository(kv)
	logRepo := database.NewLogRepository(kv)

	if err := funnelRepo.EnsureDefault(ctx); err != nil {
		log.Fatalf("❌ Falha ao semear funil padrão: %v", err)
	}

	// 3. RabbitMQ (opcional: sem broker, eventos não são publicados)
	var producer usecase.EventProducerInterface
	var rabbitMQ *queue.RabbitMQ
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		var err error
		rabbitMQ, err = queue.NewRabbitMQ(url)
		if err != nil {
			log.Fatalf("❌ RabbitMQ indisponível: %v", err)
		}
		defer rabbitMQ.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		// Worker de auditoria: consome eventos e alimenta o ledger.
		worker := queue.NewAuditWorker(rabbitMQ.Ch, logRepo)
		go worker.Start(queue.QueueName)
	}

	// 4. Mail (opcional)
	var mailer usecase.ReminderMailer
	if host := os.Getenv("MAIL_HOST"); host != "" {
		mailer = mail.NewEmailSender(host, 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"))
	}

	// 5. UseCases
	createFunnelUC := usecase.NewCreateFunnelUseCase(funnelRepo, logRepo)
	stagesUC := usecase.NewFunnelStagesUseCase(funnelRepo, leadRepo, logRepo)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, funnelRepo, productRepo, producer, logRepo)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo, productRepo, logRepo)
	deleteLeadUC := usecase.NewDeleteLeadUseCase(leadRepo, producer, logRepo)
	changeStageUC := usecase.NewChangeStageUseCase(leadRepo, funnelRepo, producer, logRepo)
	board := usecase.NewBoardController(leadRepo, funnelRepo, changeStageUC, updateLeadUC)
	productUC := usecase.NewProductUseCase(productRepo, logRepo)
	activityUC := usecase.NewActivityUseCase(activityRepo, logRepo, mailer)
	metricsUC := usecase.NewMetricsUseCase(leadRepo, funnelRepo)

	// 6. Handlers
	funnelHandler := handlers.NewFunnelHandler(funnelRepo, createFunnelUC, stagesUC)
	leadHandler := handlers.NewLeadHandler(leadRepo, funnelRepo, createLeadUC, updateLeadUC, deleteLeadUC, changeStageUC)
	boardHandler := handlers.NewBoardHandler(board)
	productHandler := handlers.NewProductHandler(productRepo, productUC)
	activityHandler := handlers.NewActivityHandler(activityUC)
	logHandler := handlers.NewLogHandler(logRepo)
	metricsHandler := handlers.NewMetricsHandler(metricsUC)

	healthHandler := handlers.NewHealthHandler(kv, nil)
	if rabbitMQ != nil {
		healthHandler = handlers.NewHealthHandler(kv, rabbitMQ.Conn)
	}

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/funnels", func(r chi.Router) {
		r.Get("/", funnelHandler.List)
		r.Post("/", funnelHandler.Create)
		r.Get("/{id}", funnelHandler.Get)
		r.Delete("/{id}", funnelHandler.Delete)
		r.Post("/{id}/stages", funnelHandler.AddStage)
		r.Delete("/{id}/stages/{stageId}", funnelHandler.RemoveStage)
	})

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leadHandler.List)
		r.Post("/", leadHandler.Create)
		r.Get("/{id}", leadHandler.Get)
		r.Put("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
		r.Put("/{id}/stage", leadHandler.ChangeStage)
	})
	r.Post("/capture", leadHandler.Capture)

	r.Route("/board", func(r chi.Router) {
		r.Post("/reorder", boardHandler.Reorder)
		r.Get("/move", boardHandler.PendingMove)
		r.Post("/move", boardHandler.RequestMove)
		r.Post("/move/confirm", boardHandler.ConfirmMove)
		r.Post("/move/cancel", boardHandler.CancelMove)
		r.Put("/lead", boardHandler.UpdateLead)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/{id}", productHandler.Get)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", activityHandler.List)
		r.Post("/", activityHandler.Create)
		r.Get("/upcoming", activityHandler.Upcoming)
		r.Post("/reminders", activityHandler.SendReminders)
		r.Put("/{id}", activityHandler.Update)
		r.Delete("/{id}", activityHandler.Delete)
	})

	r.Get("/logs", logHandler.List)

	r.Get("/dashboard/metrics", metricsHandler.Dashboard)
	r.Get("/stages/{stageId}/total", metricsHandler.StageTotal)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 CRM Funil rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
