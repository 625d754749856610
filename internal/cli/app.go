// Package cli implements the interactive careportal client: a REPL over the
// healthcare platform API with locally persisted sessions.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"careportal/internal/api"
	"careportal/internal/clientdb"
	"careportal/internal/config"
	"careportal/internal/llm"
	"careportal/internal/logging"
	"careportal/internal/models"
	"careportal/internal/repositories/kv"
	"careportal/internal/session"

	_ "modernc.org/sqlite"
)

// authAPI is the account-facing slice of the platform API used by the CLI.
// *api.Client satisfies it; tests can provide a stub.
type authAPI interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Me(ctx context.Context) (*models.Profile, error)
}

// careAPI is the patient-data slice of the platform API.
type careAPI interface {
	AvailableDoctors(ctx context.Context) ([]models.Doctor, error)
	Doctor(ctx context.Context, id string) (*models.Doctor, error)
	Appointments(ctx context.Context) ([]models.Appointment, error)
	BookAppointment(ctx context.Context, req api.BookAppointmentRequest) (*models.Appointment, error)
	RescheduleAppointment(ctx context.Context, id, date, timeSlot string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string) error
	Messages(ctx context.Context, conversationID string) ([]models.Message, error)
	SendMessage(ctx context.Context, receiverID, content string) (*models.Message, error)
	AnalyzeSymptoms(ctx context.Context, req models.DiagnosisRequest) (*models.DiagnosisReport, error)
	MedicalRecords(ctx context.Context) ([]models.MedicalRecord, error)
	UploadMedicalRecord(ctx context.Context, title, recordType, fileName string, content []byte) (*models.MedicalRecord, error)
	DeleteMedicalRecord(ctx context.Context, id string) error
	Notifications(ctx context.Context) ([]models.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*models.Profile, error)
	SubscriptionStatus(ctx context.Context) (*models.Subscription, error)
	Subscribe(ctx context.Context, plan string) (string, error)
	ConfirmCheckout(ctx context.Context, sessionID string) (*models.Subscription, error)
}

type App struct {
	config   *config.Config
	sessions *session.Manager
	auth     authAPI
	care     careAPI
	analyzer llm.Analyzer
	log      logging.Logger
	reader   *bufio.Reader
	db       *sql.DB
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := os.MkdirAll(c.StateDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := clientdb.Open(ctx, c.DBPath())
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	key, err := clientdb.DeviceKey(c.DeviceKeyPath())
	if err != nil {
		return nil, err
	}

	store := kv.NewSealed(kv.NewSQLiteRepository(db), key)
	sessions := session.NewManager(store, log)

	client := api.NewClient(c.BaseURL, sessions, log,
		api.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		api.WithUnauthorizedHook(sessions.Invalidate),
	)

	app := &App{
		config:   c,
		sessions: sessions,
		auth:     client,
		care:     client,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		db:       db,
	}

	if c.OpenAIAPIKey != "" {
		app.analyzer = llm.NewOpenAIAnalyzer(c.OpenAIAPIKey, c.OpenAIModel)
	}

	return app, nil
}

func (a *App) isLoggedIn() bool {
	_, state := a.sessions.Current()
	return state == session.StateAuthenticated
}

func (a *App) getStatus() string {
	cur, state := a.sessions.Current()
	if state == session.StateAuthenticated {
		return fmt.Sprintf("(%s)", cur.AccountID)
	}
	return "(anonymous)"
}

// Run restores the previous session, if any, and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.sessions.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	printlnFn("Welcome to careportal (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
