package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kariyer_backend/internal/app"
	"kariyer_backend/internal/config"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/ws"
)

const (
	adminEmail    = "admin@kariyer.test"
	adminPassword = "admin-password-1"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Storage.BasePath = t.TempDir()
	cfg.JWT.Secret = "router-test-secret"
	cfg.FirstAdminEmail = adminEmail
	cfg.FirstAdminPassword = adminPassword

	require.NoError(t, app.Seed(db, cfg))

	infra, err := app.NewInfrastructure(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	router, _ := app.SetupRouter(cfg, db, infra, ws.NewHub())
	return &testServer{router: router, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthAndSwagger(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kariyer Kamulog API")
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Name:     "Ayşe Yılmaz",
		Email:    "Ayse@Example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[dto.UserResponse](t, rec)
	assert.Equal(t, "ayse@example.com", registered.Email)
	assert.Equal(t, models.UserRoleUser, registered.Role)
	assert.Equal(t, config.Default().AI.SignupTokens, registered.Tokens)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Name:     "Ayşe Again",
		Email:    "ayse@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "ayse@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "ayse@example.com", Password: "password123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "kk_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "login sets the session cookie")
	assert.True(t, sessionCookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(sessionCookie)
	me := httptest.NewRecorder()
	s.router.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	assert.Equal(t, registered.ID, decode[dto.UserResponse](t, me).ID)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "A",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionApprovalFlow(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "user@kariyer.test", models.UserRoleUser)
	userToken := s.login(t, "user@kariyer.test", testutil.DefaultPassword)

	rec := s.do(t, http.MethodGet, "/api/v1/plans", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plans := decode[[]dto.Plan](t, rec)
	require.NotEmpty(t, plans)

	rec = s.do(t, http.MethodPost, "/api/v1/subscriptions", userToken, dto.CreateSubscriptionRequest{PlanID: "premium"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.CreateSubscriptionResponse](t, rec)
	require.NotNil(t, created.Subscription)
	assert.Equal(t, models.SubscriptionStatusPending, created.Subscription.Status)
	assert.NotEmpty(t, created.Subscription.OrderCode)

	rec = s.do(t, http.MethodPost, "/api/v1/subscriptions", userToken, dto.CreateSubscriptionRequest{PlanID: "basic"})
	assert.Equal(t, http.StatusConflict, rec.Code, "one pending order per user")

	approvePath := "/api/v1/admin/subscriptions/" + created.Subscription.ID + "/approve"
	rec = s.do(t, http.MethodPost, approvePath, userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := s.login(t, adminEmail, adminPassword)
	rec = s.do(t, http.MethodPost, approvePath, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.SubscriptionStatusActive, decode[models.Subscription](t, rec).Status)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[dto.UserResponse](t, rec)
	assert.True(t, me.IsPremium)
	assert.Equal(t, 5, me.Credits)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/sales", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "user@kariyer.test", models.UserRoleUser)
	testutil.CreateUser(t, s.db, "mod@kariyer.test", models.UserRoleModerator)
	userToken := s.login(t, "user@kariyer.test", testutil.DefaultPassword)
	modToken := s.login(t, "mod@kariyer.test", testutil.DefaultPassword)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/dashboard", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/dashboard", modToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Moderators read the back office but admin-only actions stay closed.
	rec = s.do(t, http.MethodGet, "/api/v1/admin/logs", modToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/whatsapp/status", modToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicContent(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/settings/public/site", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/payment-info", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/consultants", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/jobs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[dto.PaginatedResponse](t, rec)
	assert.EqualValues(t, 30, page.Total, "seeded sample listings")

	rec = s.do(t, http.MethodGet, "/api/v1/jobs/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAIWithoutKeyFailsWithoutCharging(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "user@kariyer.test", models.UserRoleUser)
	testutil.SetBalance(t, s.db, user.ID, 0, 10)
	token := s.login(t, "user@kariyer.test", testutil.DefaultPassword)

	rec := s.do(t, http.MethodPost, "/api/v1/ai/improve", token, map[string]string{
		"section": "summary",
		"text":    "Muhasebe alanında beş yıllık deneyim.",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())

	var reloaded models.User
	require.NoError(t, s.db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, 10, reloaded.Tokens)
}

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	cfg := config.Default()
	cfg.FirstAdminEmail = adminEmail
	cfg.FirstAdminPassword = "another-password"
	require.NoError(t, app.Seed(s.db, cfg))

	var admins, categories, jobs int64
	require.NoError(t, s.db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&admins).Error)
	require.NoError(t, s.db.Model(&models.MediaCategory{}).Count(&categories).Error)
	require.NoError(t, s.db.Model(&models.JobListing{}).Count(&jobs).Error)
	assert.Equal(t, int64(1), admins)
	assert.Equal(t, int64(3), categories)
	assert.Equal(t, int64(30), jobs)

	// The existing admin keeps the original password.
	s.login(t, adminEmail, adminPassword)
}

func (s *testServer) upload(t *testing.T, path, token, fileName, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestMediaUploadsAreServedByContent(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "mod@kariyer.test", models.UserRoleModerator)
	token := s.login(t, "mod@kariyer.test", testutil.DefaultPassword)

	rec := s.upload(t, "/api/v1/admin/media", token, "evil.html", "image/png",
		[]byte("<script>alert(document.cookie)</script>"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code, rec.Body.String())

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 4, 4))))
	rec = s.upload(t, "/api/v1/admin/media", token, "afis.html", "text/html", img.Bytes())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	picture := decode[models.Media](t, rec)
	assert.Equal(t, "image/png", picture.MimeType)
	require.True(t, strings.HasSuffix(picture.Path, ".png"), picture.Path)

	rec = s.do(t, http.MethodGet, "/api/v1/files/"+picture.Path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "inline", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = s.upload(t, "/api/v1/admin/media", token, "duyuru.html", "text/html", []byte("Sınav sonuçları açıklandı."))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	notice := decode[models.Media](t, rec)
	require.True(t, strings.HasSuffix(notice.Path, ".txt"), notice.Path)

	rec = s.do(t, http.MethodGet, "/api/v1/files/"+notice.Path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment"))
}

func TestAccountChangesApplyToOpenSessions(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "user@kariyer.test", models.UserRoleUser)
	mod := testutil.CreateUser(t, s.db, "mod@kariyer.test", models.UserRoleModerator)
	userToken := s.login(t, "user@kariyer.test", testutil.DefaultPassword)
	modToken := s.login(t, "mod@kariyer.test", testutil.DefaultPassword)
	adminToken := s.login(t, adminEmail, adminPassword)

	rec := s.do(t, http.MethodGet, "/api/v1/cvs", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/admin/users", modToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/admin/users/"+user.ID, adminToken, map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPut, "/api/v1/admin/users/"+mod.ID, adminToken, map[string]interface{}{"role": models.UserRoleUser})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/cvs", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "deactivated account")
	rec = s.do(t, http.MethodPost, "/api/v1/cvs", userToken, map[string]interface{}{
		"title": "CV", "template": "classic", "data": map[string]string{"name": "Ayşe"},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/users", modToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "demoted moderator")
	rec = s.do(t, http.MethodGet, "/api/v1/admin/dashboard", modToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", modToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "the account itself still works")

	rec = s.do(t, http.MethodDelete, "/api/v1/admin/users/"+mod.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", modToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "deleted account")
}

func TestLoginIsRateLimitedPerIP(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "user@kariyer.test", models.UserRoleUser)

	creds := dto.LoginRequest{Email: "user@kariyer.test", Password: "wrong-password"}
	for i := 0; i < 5; i++ {
		rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", creds)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", creds)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "RATE_LIMITED", body["code"])

	creds.Password = testutil.DefaultPassword
	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "the right password does not bypass the limit")
}
