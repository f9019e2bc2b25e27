package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kariyer_backend/internal/ai"
	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/email"
	"kariyer_backend/internal/imageprocessor"
	"kariyer_backend/internal/jobfeed"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/internal/storage"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/pkg/apperrors"
)

// fakeGateway records outgoing WhatsApp messages.
type fakeGateway struct {
	mu        sync.Mutex
	connected bool
	qr        string
	sent      []string
}

func (g *fakeGateway) Status() dto.WhatsAppStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return dto.WhatsAppStatus{Enabled: true, Connected: g.connected, LoggedIn: g.connected, HasQR: g.qr != ""}
}

func (g *fakeGateway) QRCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.qr
}

func (g *fakeGateway) SendText(_ context.Context, phone, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.connected {
		return apperrors.ErrWhatsAppNotConnected
	}
	g.sent = append(g.sent, phone+": "+text)
	return nil
}

func (g *fakeGateway) Logout(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.connected = false
	return nil
}

// captureMail collects rendered emails.
type captureMail struct {
	mu   sync.Mutex
	sent []*email.Email
}

func (c *captureMail) Send(_ context.Context, e *email.Email) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, e)
	return nil
}
func (c *captureMail) Validate() error { return nil }
func (c *captureMail) Close() error    { return nil }

func (c *captureMail) subjects() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.sent))
	for _, e := range c.sent {
		out = append(out, e.Subject)
	}
	return out
}

// fakeAssistant answers every AI call with canned data or err.
type fakeAssistant struct {
	err   error
	calls int
}

func (f *fakeAssistant) AnalyzeCV(context.Context, json.RawMessage, string) (*ai.CVAnalysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ai.CVAnalysis{Score: 72, Summary: "Güçlü bir başlangıç", Strengths: []string{"Go"}}, nil
}

func (f *fakeAssistant) ParseCV(context.Context, string) (*ai.ParsedCV, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ai.ParsedCV{Title: "Ayşe Yılmaz CV", Data: json.RawMessage(`{"personal":{"name":"Ayşe Yılmaz"}}`)}, nil
}

func (f *fakeAssistant) Improve(_ context.Context, _, text, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "Geliştirilmiş: " + text, nil
}

func (f *fakeAssistant) MatchJob(context.Context, json.RawMessage, *models.JobListing, string) (*ai.JobMatch, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ai.JobMatch{MatchScore: 64, MatchedSkills: []string{"SQL"}, Recommendation: "Başvurun"}, nil
}

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db        *gorm.DB
	gateway   *fakeGateway
	mail      *captureMail
	assistant *fakeAssistant
	store     storage.Storage
	services  *ServiceContainer
}

const testRoomCost = 1

var testCosts = AICosts{CVAnalysis: 5, CVParse: 10, Improve: 2, JobMatch: 3}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	tm, err := email.NewTemplateManager()
	require.NoError(t, err)
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)

	env := &testEnv{
		db:        db,
		gateway:   &fakeGateway{connected: true},
		mail:      &captureMail{},
		assistant: &fakeAssistant{},
		store:     store,
	}

	userRepo := repositories.NewUserRepository()
	subRepo := repositories.NewSubscriptionRepository()
	salesRepo := repositories.NewSalesRepository()
	waLogRepo := repositories.NewWhatsAppLogRepository()
	consultantRepo := repositories.NewConsultantRepository()
	chatRepo := repositories.NewChatRepository()
	cvRepo := repositories.NewCVRepository()
	jobRepo := repositories.NewJobRepository()

	audit := NewAuditService(repositories.NewAdminLogRepository())
	notifier := NewNotificationService(email.NewMailer(env.mail, tm, "https://kariyerkamulog.test"), env.gateway, waLogRepo)
	t.Cleanup(notifier.Wait)
	settings := NewSettingsService(repositories.NewSettingsRepository(), audit)
	_, err = settings.EnsureDefaults(db)
	require.NoError(t, err)

	media := NewMediaService(repositories.NewMediaRepository(), store, imageprocessor.NewProcessor(80), MediaConfig{
		MaxSize:      1 << 20,
		AllowedTypes: []string{"image/png", "image/jpeg", "application/pdf", "text/plain"},
	}, audit)

	env.services = &ServiceContainer{
		AuthService:         NewAuthService(userRepo, subRepo, auth.NewTokenManager("test-secret", time.Hour), notifier, 20, "https://kariyerkamulog.test"),
		UserService:         NewUserService(userRepo, subRepo, audit),
		SubscriptionService: NewSubscriptionService(subRepo, userRepo, salesRepo, settings, audit, notifier),
		ConsultantService:   NewConsultantService(consultantRepo, userRepo, audit),
		ChatService:         NewChatService(chatRepo, consultantRepo, userRepo, subRepo, nil, testRoomCost),
		CVService:           NewCVService(cvRepo, userRepo, env.assistant, testCosts, 1<<20),
		JobService:          NewJobService(jobRepo, cvRepo, userRepo, jobfeed.NewGenerator(7), env.assistant, testCosts.JobMatch, audit),
		MediaService:        media,
		SettingsService:     settings,
		AuditService:        audit,
		AdminService:        NewAdminService(userRepo, subRepo, chatRepo, jobRepo, cvRepo, salesRepo, waLogRepo),
		WhatsAppService:     NewWhatsAppService(env.gateway, notifier, waLogRepo, audit),
		NotificationService: notifier,
	}
	t.Cleanup(notifier.Wait)
	return env
}

func adminActor(u *models.User) dto.Actor {
	return dto.Actor{UserID: u.ID, Role: u.Role, IP: "127.0.0.1"}
}

// activePremium creates and approves a premium subscription for user.
func (e *testEnv) activePremium(t *testing.T, user, admin *models.User) *models.Subscription {
	t.Helper()
	created, err := e.services.SubscriptionService.Create(e.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "premium"})
	require.NoError(t, err)
	sub, err := e.services.SubscriptionService.Approve(e.db, adminActor(admin), created.Subscription.ID)
	require.NoError(t, err)
	return sub
}
