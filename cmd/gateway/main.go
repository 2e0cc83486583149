package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/examforge/examforge/internal/api/http"
	auth "github.com/examforge/examforge/internal/auth/middleware"
	"github.com/examforge/examforge/internal/config"
	"github.com/examforge/examforge/internal/db"
	"github.com/examforge/examforge/internal/event"
	"github.com/examforge/examforge/internal/exam"
	"github.com/examforge/examforge/internal/grading"
	"github.com/examforge/examforge/internal/rbac"
	"github.com/examforge/examforge/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	grader := grading.NewDefaultGrader(grading.WithPartialMultiCredit(cfg.PartialMultiCredit))
	store := exam.NewSQLStore(dbh, exam.WithGrader(grader))
	catalog := exam.NewSQLCatalog(dbh)

	var pub event.Publisher
	if cfg.AMQPURL != "" {
		p, err := event.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("amqp connect: %v", err)
		}
		defer p.Close()
		pub = p
	}
	events := event.NewRecorder(dbh, pub)

	assets, err := storage.NewFSAssets(cfg.AssetDir)
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthHMACSecret, cfg.SeedUsers)
	a := api.NewAPI(store, catalog, assets, events)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	// Protected API (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("exam:create")).
			Post("/exams", a.SaveExam())
		pr.With(rbac.Require("exam:view")).
			Get("/exams/{examID}", a.GetExam())
		pr.With(rbac.Require("exam:create")).
			Put("/exams/{examID}/assets/{name}", a.UploadExamAsset())
		pr.With(rbac.Require("exam:view")).
			Get("/exams/{examID}/assets", a.ListExamAssets())
		pr.With(rbac.Require("exam:view")).
			Get("/exams/{examID}/assets/{name}", a.GetExamAsset())

		// Student flow
		pr.With(rbac.Require("attempt:create")).
			Post("/attempts", a.StartAttempt())
		pr.With(rbac.Require("attempt:save")).
			Post("/attempts/{attemptID}/answers", a.SubmitAnswer())
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/{attemptID}/complete", a.CompleteAttempt())
		pr.With(rbac.Require("attempt:save")).
			Post("/attempts/{attemptID}/abandon", a.AbandonAttempt())
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts/{attemptID}", a.GetAttempt())
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts/{attemptID}/results", a.AttemptResults())
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts", a.ListAttempts())

		// Grading (teacher/admin)
		pr.With(rbac.Require("attempt:grade")).
			Post("/answers/{answerID}/grade", a.GradeAnswer())
		pr.With(rbac.Require("attempt:grade")).
			Post("/attempts/{attemptID}/regrade", a.RegradeAttempt())

		// Statistics
		pr.With(rbac.Require("stats:view")).
			Get("/exams/{examID}/stats", a.ExamStatistics())
		pr.With(rbac.RequireAny("stats:view", "stats:view-own")).
			Get("/students/{studentID}/stats", a.StudentStatistics())
	})

	log.Printf("gateway listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
