package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	http_controllers "github.com/mrlokans/bookreviews/internal/http"
	"github.com/mrlokans/bookreviews/internal/notify"
	"github.com/mrlokans/bookreviews/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before draining background email work
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// NewSender picks the email provider: SendGrid when an API key is configured,
// the log sender otherwise, optionally behind a circuit breaker.
func NewSender(cfg config.Email) notify.Sender {
	var sender notify.Sender
	if cfg.SendGridAPIKey != "" {
		sender = notify.NewSendGridSender(cfg.SendGridAPIKey, cfg.From, cfg.FromName)
	} else {
		log.Printf("WARNING: SENDGRID_API_KEY is not set. Confirmation emails will be logged instead of sent.")
		sender = notify.NewLogSender()
	}

	if cfg.BreakerEnabled {
		sender = notify.NewBreakerSender(sender, notify.BreakerConfig{
			ConsecutiveFailures: cfg.BreakerFailures,
			OpenTimeout:         cfg.BreakerOpenTimeout,
		})
	}
	return sender
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Reviews v%s", version)

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if cfg.Email.ConfirmationTo == "" {
		log.Printf("WARNING: EMAIL_CONFIRMATION_TO is not set. Review confirmations will not reach anyone.")
	}
	sender := NewSender(cfg.Email)

	// Background dispatch goes through the task queue when enabled,
	// and through an in-process goroutine pool otherwise
	var dispatcher notify.Dispatcher
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var asyncDispatcher *notify.AsyncDispatcher

	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(tasks.NewSendEmailQueue(sender))

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		dispatcher = tasks.NewEmailDispatcher(taskClient)
	} else {
		log.Printf("Task queue disabled; emails are sent from in-process goroutines")
		asyncDispatcher = notify.NewAsyncDispatcher(sender, cfg.Email.MaxInFlight, cfg.Email.Timeout)
		dispatcher = asyncDispatcher
	}

	routerCfg := http_controllers.RouterConfig{
		Database:   db,
		Books:      books.NewRepository(db.DB),
		Reviews:    reviews.NewRepository(db.DB),
		Dispatcher: dispatcher,
		Confirmation: http_controllers.ConfirmationConfig{
			To:      cfg.Email.ConfirmationTo,
			Subject: cfg.Email.ConfirmationSubject,
		},
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if asyncDispatcher != nil && !asyncDispatcher.Wait(ctx) {
			log.Printf("Shutdown deadline reached with emails still in flight")
		}
	}

	Serve(router, cfg, onShutdown)
}
