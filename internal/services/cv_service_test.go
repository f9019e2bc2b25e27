package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/pkg/apperrors"
)

func TestCV_CRUDAndPrimary(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.CVService
	u := testutil.CreateUser(t, env.db, "cv@example.com", models.UserRoleUser)
	other := testutil.CreateUser(t, env.db, "other@example.com", models.UserRoleUser)

	_, err := svc.Create(env.db, u.ID, &dto.CVRequest{Title: "Bozuk", Data: json.RawMessage(`["not","object"]`)})
	assert.ErrorIs(t, err, apperrors.ValidationError(nil))

	first, err := svc.Create(env.db, u.ID, &dto.CVRequest{Title: "Ana CV", Data: json.RawMessage(`{"summary": "Yazılım geliştirici"}`)})
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)
	assert.Equal(t, "classic", first.Template)

	second, err := svc.Create(env.db, u.ID, &dto.CVRequest{Title: "İngilizce", Template: "modern", Data: json.RawMessage(`{}`)})
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)

	_, err = svc.Get(env.db, other.ID, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrCVNotFound)

	_, err = svc.SetPrimary(env.db, u.ID, second.ID)
	require.NoError(t, err)
	reloaded, err := svc.Get(env.db, u.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsPrimary)

	require.NoError(t, svc.Delete(env.db, u.ID, second.ID))
	reloaded, err = svc.Get(env.db, u.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsPrimary, "the remaining CV is promoted")

	html, err := svc.ExportHTML(env.db, u.ID, first.ID)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Yazılım geliştirici")
}

func TestCV_AnalyzeChargesTokensAfterSuccess(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.CVService
	u := testutil.CreateUser(t, env.db, "analiz@example.com", models.UserRoleUser)
	cv, err := svc.Create(env.db, u.ID, &dto.CVRequest{Title: "CV", Data: json.RawMessage(`{"skills":["Go"]}`)})
	require.NoError(t, err)

	testutil.SetBalance(t, env.db, u.ID, 0, testCosts.CVAnalysis-1)
	_, err = svc.Analyze(context.Background(), env.db, u.ID, cv.ID, "tr")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientTokens)
	assert.Zero(t, env.assistant.calls, "no model call without tokens")

	testutil.SetBalance(t, env.db, u.ID, 0, 10)
	env.assistant.err = errors.New("upstream 503")
	_, err = svc.Analyze(context.Background(), env.db, u.ID, cv.ID, "tr")
	assert.ErrorIs(t, err, apperrors.ErrAIUnavailable)

	var user models.User
	require.NoError(t, env.db.First(&user, "id = ?", u.ID).Error)
	assert.Equal(t, 10, user.Tokens, "failed calls are free")

	env.assistant.err = nil
	analyzed, err := svc.Analyze(context.Background(), env.db, u.ID, cv.ID, "tr")
	require.NoError(t, err)
	require.NotNil(t, analyzed.Score)
	assert.Equal(t, 72, *analyzed.Score)
	assert.Contains(t, string(analyzed.Analysis), "Güçlü bir başlangıç")

	require.NoError(t, env.db.First(&user, "id = ?", u.ID).Error)
	assert.Equal(t, 10-testCosts.CVAnalysis, user.Tokens)
}

func TestCV_ImportText(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.CVService
	u := testutil.CreateUser(t, env.db, "import@example.com", models.UserRoleUser)
	testutil.SetBalance(t, env.db, u.ID, 0, 50)

	_, err := svc.Import(context.Background(), env.db, u.ID, dto.UploadInput{
		FileName: "foto.png", MimeType: "image/png", Size: 10, Data: []byte("png"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	content := []byte("Ayşe Yılmaz\nYazılım Mühendisi\nDeneyim: 5 yıl Go")
	cv, err := svc.Import(context.Background(), env.db, u.ID, dto.UploadInput{
		FileName: "ayse.txt", MimeType: "text/plain", Size: int64(len(content)), Data: content,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz CV", cv.Title)
	assert.True(t, cv.IsPrimary)
	assert.JSONEq(t, `{"personal":{"name":"Ayşe Yılmaz"}}`, string(cv.Data))

	var user models.User
	require.NoError(t, env.db.First(&user, "id = ?", u.ID).Error)
	assert.Equal(t, 50-testCosts.CVParse, user.Tokens)
}

func TestCV_Improve(t *testing.T) {
	env := newTestEnv(t)
	u := testutil.CreateUser(t, env.db, "improve@example.com", models.UserRoleUser)
	testutil.SetBalance(t, env.db, u.ID, 0, testCosts.Improve)

	resp, err := env.services.CVService.Improve(context.Background(), env.db, u.ID, &dto.ImproveTextRequest{
		Section: "summary",
		Text:    "Takım oyuncusuyum",
	})
	require.NoError(t, err)
	assert.Equal(t, "Geliştirilmiş: Takım oyuncusuyum", resp.Improved)

	_, err = env.services.CVService.Improve(context.Background(), env.db, u.ID, &dto.ImproveTextRequest{Section: "summary", Text: "tekrar"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientTokens)
}
