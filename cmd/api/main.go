package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/capacita-crm/internal/config"
	"github.com/xavierca1/capacita-crm/internal/entity"
	"github.com/xavierca1/capacita-crm/internal/infra/auth"
	"github.com/xavierca1/capacita-crm/internal/infra/database"
	"github.com/xavierca1/capacita-crm/internal/infra/http/handlers"
	appmw "github.com/xavierca1/capacita-crm/internal/infra/http/middleware"
	"github.com/xavierca1/capacita-crm/internal/infra/mail"
	"github.com/xavierca1/capacita-crm/internal/infra/queue"
	"github.com/xavierca1/capacita-crm/internal/infra/ratelimit"
	"github.com/xavierca1/capacita-crm/internal/usecase"
)

func main() {
	createAdmin := flag.String("create-admin", "", "seed an admin user as email:name:password and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	if err := appmw.InitSentry(cfg.SentryDSN, cfg.Environment); err != nil {
		log.Printf("⚠️ Sentry desativado: %v", err)
	}
	defer appmw.FlushSentry()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("❌ Falha na migração: %v", err)
		}
		log.Println("✅ Schema atualizado")
	}

	hasher := auth.NewBcryptHasher()

	if *createAdmin != "" {
		if err := seedAdmin(ctx, db, hasher, *createAdmin); err != nil {
			log.Fatalf("❌ %v", err)
		}
		return
	}

	tokens, err := auth.NewTokenManager(cfg.SessionSecret)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	contactRepo := database.NewContactRepository(db)
	dealRepo := database.NewDealRepository(db)
	leadActivities := database.NewLeadActivityRepository(db)
	dealActivities := database.NewDealActivityRepository(db)
	courseRepo := database.NewCourseRepository(db)
	categoryRepo := database.NewCategoryRepository(db)
	modalityRepo := database.NewModalityRepository(db)
	companyRepo := database.NewCompanyRepository(db)
	testimonialRepo := database.NewTestimonialRepository(db)
	adminRepo := database.NewAdminRepository(db)

	// 2. Mensageria (opcional)
	var events usecase.EventPublisher = queue.LogPublisher{}
	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer rabbitMQ.Close()
		events = queue.NewProducer(rabbitMQ.Ch)

		if cfg.MailEnabled() {
			sender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.SalesNotifyEmail)
			sender.AdminURL = cfg.AdminURL

			consumerCh, err := rabbitMQ.Conn.Channel()
			if err != nil {
				log.Fatalf("❌ Falha ao abrir canal do worker: %v", err)
			}
			worker := queue.NewWorker(consumerCh, sender)
			go func() {
				if err := worker.Start(ctx, queue.LeadNotificationsQueue); err != nil {
					log.Printf("❌ Worker encerrado: %v", err)
				}
			}()
		} else {
			log.Println("⚠️ SMTP não configurado: notificações de lead desativadas")
		}
	}

	// 3. Rate limiter
	var limiter ratelimit.Limiter
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, "rl:leads", cfg.LeadRateLimit, time.Minute)
	} else {
		mem := ratelimit.NewMemoryLimiter(cfg.LeadRateLimit, time.Minute)
		go mem.RunCleanup(ctx, 10*time.Minute)
		limiter = mem
	}

	// 4. UseCases
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo)
	updateLeadUC.OnStageChange = func(to string) { appmw.RecordStageChange("lead", to) }
	updateDealUC := usecase.NewUpdateDealUseCase(dealRepo, contactRepo, events)
	updateDealUC.OnStageChange = func(to string) { appmw.RecordStageChange("deal", to) }

	catalogUC := &usecase.CatalogUseCase{
		Courses:      courseRepo,
		Categories:   categoryRepo,
		Modalities:   modalityRepo,
		Companies:    companyRepo,
		Testimonials: testimonialRepo,
	}

	// 5. Handlers
	checks := map[string]handlers.HealthChecker{"rabbitmq": nil, "redis": nil}
	if rabbitMQ != nil {
		checks["rabbitmq"] = func(context.Context) error {
			if !rabbitMQ.Healthy() {
				return errors.New("connection closed")
			}
			return nil
		}
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	router := &handlers.Router{
		Leads: &handlers.LeadHandler{
			Leads:      leadRepo,
			Activities: leadActivities,
			CaptureUC:  usecase.NewCaptureLeadUseCase(leadRepo, events),
			UpdateUC:   updateLeadUC,
			NoteUC:     usecase.NewAddLeadNoteUseCase(leadRepo, leadActivities),
			ConvertUC:  usecase.NewConvertLeadUseCase(leadRepo, contactRepo, events),
			Limiter:    limiter,
		},
		Deals: &handlers.DealHandler{
			Deals:      dealRepo,
			Activities: dealActivities,
			CreateUC:   usecase.NewCreateDealUseCase(dealRepo, contactRepo),
			UpdateUC:   updateDealUC,
			NoteUC:     usecase.NewAddDealNoteUseCase(dealRepo, dealActivities),
		},
		Contacts: &handlers.ContactHandler{
			Contacts: contactRepo,
			CreateUC: usecase.NewCreateContactUseCase(contactRepo),
			UpdateUC: usecase.NewUpdateContactUseCase(contactRepo),
		},
		Catalog: &handlers.CatalogHandler{
			Courses:      courseRepo,
			Categories:   categoryRepo,
			Modalities:   modalityRepo,
			Companies:    companyRepo,
			Testimonials: testimonialRepo,
			UC:           catalogUC,
		},
		Auth: &handlers.AuthHandler{
			LoginUC:      usecase.NewLoginUseCase(adminRepo, hasher, tokens),
			SecureCookie: cfg.SecureCookie,
		},
		Dashboard:      &handlers.DashboardHandler{DashboardUC: usecase.NewDashboardUseCase(leadRepo, dealRepo, contactRepo)},
		Health:         handlers.NewHealthHandler(db, checks),
		Sessions:       tokens,
		AllowedOrigins: cfg.AllowedOrigins,
		AdminStaticDir: cfg.AdminStaticDir,
		TrustProxy:     cfg.TrustProxy,
	}

	// 6. Servidor
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 Capacita CRM rodando na porta %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Servidor caiu: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Shutdown forçado: %v", err)
	}
}

// seedAdmin parses "email:name:password" and upserts the admin user.
func seedAdmin(ctx context.Context, db *sql.DB, hasher *auth.BcryptHasher, arg string) error {
	parts := strings.SplitN(arg, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return errors.New("-create-admin espera email:nome:senha")
	}

	hash, err := hasher.Hash(parts[2])
	if err != nil {
		return fmt.Errorf("falha ao gerar hash: %w", err)
	}

	user := entity.NewAdminUser(parts[0], parts[1], hash)
	if err := database.NewAdminRepository(db).Create(ctx, user); err != nil {
		return fmt.Errorf("falha ao criar admin: %w", err)
	}
	log.Printf("✅ Admin %s criado", user.Email)
	return nil
}
