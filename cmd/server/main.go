package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wptechprodigy/mail-sonic/internal/api"
	"github.com/wptechprodigy/mail-sonic/internal/config"
	"github.com/wptechprodigy/mail-sonic/internal/contacts"
	"github.com/wptechprodigy/mail-sonic/internal/db"
	"github.com/wptechprodigy/mail-sonic/internal/imap"
	"github.com/wptechprodigy/mail-sonic/internal/logger"
	"github.com/wptechprodigy/mail-sonic/internal/smtp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.NewConnection(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to open contact store", zap.Error(err))
	}
	defer db.CloseConnection(store)

	logger.Log.Info("Contact store ready", zap.String("driver", cfg.ContactsDriver))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewServer(cfg, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Log.Info("MailSonic server starting",
		zap.String("address", srv.Addr),
		zap.String("environment", cfg.Environment),
	)

	if err := run(ctx, srv); err != nil {
		db.CloseConnection(store)
		logger.Log.Fatal("Server stopped with error", zap.Error(err))
	}

	logger.Log.Info("Server stopped")
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// NewServer creates and returns a new HTTP handler for the MailSonic API server.
// Every request gets its own worker from the factories below.
func NewServer(cfg *config.Config, store *sqlx.DB) http.Handler {
	newMailboxWorker := func() imap.MailboxWorker {
		return imap.NewWorker(cfg.ServerInfo.IMAP)
	}
	newDispatchWorker := func() smtp.DispatchWorker {
		return smtp.NewWorker(cfg.ServerInfo.SMTP)
	}
	newContactWorker := func() contacts.ContactWorker {
		return contacts.NewWorker(store)
	}

	mailboxesHandler := api.NewMailboxesHandler(newMailboxWorker)
	messagesHandler := api.NewMessagesHandler(newMailboxWorker, newDispatchWorker)
	contactsHandler := api.NewContactsHandler(newContactWorker)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /mailboxes", mailboxesHandler.ListMailboxes)
	mux.HandleFunc("GET /mailboxes/{mailbox}", mailboxesHandler.ListMessages)

	mux.HandleFunc("GET /messages/{mailbox}/{id}", messagesHandler.GetMessage)
	mux.HandleFunc("DELETE /messages/{mailbox}/{id}", messagesHandler.DeleteMessage)
	mux.HandleFunc("POST /messages", messagesHandler.SendMessage)

	mux.HandleFunc("GET /contacts", contactsHandler.ListContacts)
	mux.HandleFunc("POST /contacts", contactsHandler.AddContact)
	mux.HandleFunc("PUT /contacts/{id}", contactsHandler.UpdateContact)
	mux.HandleFunc("DELETE /contacts/{id}", contactsHandler.DeleteContact)

	if isDir(cfg.StaticDir) {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		logger.Log.Info("Static client bundle not found, serving API only", zap.String("dir", cfg.StaticDir))
		mux.HandleFunc("GET /{$}", handleRoot)
	}

	return api.CORS(logger.RequestLogger(api.Recover(mux)))
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "MailSonic API is running")
}
