package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/pkg/apperrors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "is-ilanlari", Slugify("İş İlanları"))
	assert.Equal(t, "kpss-2025-sinav-takvimi", Slugify("  KPSS 2025: Sınav takvimi! "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestMedia_Categories(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.MediaService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	actor := adminActor(admin)

	cat, err := svc.CreateCategory(env.db, actor, &dto.MediaCategoryRequest{Name: "Görseller"})
	require.NoError(t, err)
	assert.Equal(t, "gorseller", cat.Slug)

	_, err = svc.CreateCategory(env.db, actor, &dto.MediaCategoryRequest{Name: "Başka", Slug: "gorseller"})
	assert.ErrorIs(t, err, apperrors.ErrSlugExists)

	updated, err := svc.UpdateCategory(env.db, actor, cat.ID, &dto.MediaCategoryRequest{Name: "Görseller", Slug: "gorseller"})
	require.NoError(t, err, "keeping its own slug is allowed")
	assert.Equal(t, cat.ID, updated.ID)

	list, err := svc.ListCategories(env.db)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMedia_UploadImageMakesThumbnail(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.MediaService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	actor := adminActor(admin)
	ctx := context.Background()

	cat, err := svc.CreateCategory(env.db, actor, &dto.MediaCategoryRequest{Name: "Afişler"})
	require.NoError(t, err)

	data := pngBytes(t, 640, 320)
	media, err := svc.Upload(ctx, env.db, actor, dto.UploadInput{
		FileName:   "afis.PNG",
		MimeType:   "image/png",
		Size:       int64(len(data)),
		Data:       data,
		CategoryID: &cat.ID,
		Alt:        "Afiş",
	})
	require.NoError(t, err)
	assert.Equal(t, 640, media.Width)
	assert.Equal(t, 320, media.Height)
	assert.NotEmpty(t, media.ThumbnailPath)
	assert.True(t, bytes.HasSuffix([]byte(media.Path), []byte(".png")))

	ok, err := env.store.Exists(ctx, media.Path)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = env.store.Exists(ctx, media.ThumbnailPath)
	require.NoError(t, err)
	assert.True(t, ok)

	page, err := svc.List(env.db, dto.MediaListQuery{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	require.NoError(t, svc.DeleteCategory(env.db, actor, cat.ID))
	detached, err := svc.Get(env.db, media.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.CategoryID)

	require.NoError(t, svc.Delete(ctx, env.db, actor, media.ID))
	ok, err = env.store.Exists(ctx, media.Path)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = env.store.Exists(ctx, media.ThumbnailPath)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMedia_UploadValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.MediaService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)

	_, err := svc.Upload(context.Background(), env.db, adminActor(admin), dto.UploadInput{
		FileName: "big.pdf", MimeType: "application/pdf", Size: 2 << 20, Data: []byte("x"),
	})
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	_, err = svc.Upload(context.Background(), env.db, adminActor(admin), dto.UploadInput{
		FileName: "script.sh", MimeType: "application/x-sh", Size: 3, Data: []byte{0x7f, 'E', 'L', 'F'},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	doc, err := svc.Upload(context.Background(), env.db, adminActor(admin), dto.UploadInput{
		FileName: "ilan", DeclaredType: "application/octet-stream", Size: 8, Data: []byte("%PDF-1.7"),
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.True(t, strings.HasSuffix(doc.Path, ".pdf"))
	assert.Empty(t, doc.ThumbnailPath)
}

func TestMedia_UploadTypesComeFromContent(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.MediaService
	actor := adminActor(testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin))
	ctx := context.Background()

	page := []byte("<html><script>alert(document.cookie)</script></html>")
	_, err := svc.Upload(ctx, env.db, actor, dto.UploadInput{
		FileName: "evil.html", MimeType: "image/png", DeclaredType: "image/png",
		Size: int64(len(page)), Data: page,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType, "markup declared as an image is rejected")

	data := pngBytes(t, 20, 10)
	img, err := svc.Upload(ctx, env.db, actor, dto.UploadInput{
		FileName: "photo.html", DeclaredType: "text/html", Size: int64(len(data)), Data: data,
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)
	assert.True(t, strings.HasSuffix(img.Path, ".png"), "key extension follows the content, got %s", img.Path)

	notes := []byte("Başvuru tarihleri: 1-15 Kasım")
	txt, err := svc.Upload(ctx, env.db, actor, dto.UploadInput{
		FileName: "notes.svg", DeclaredType: "image/svg+xml", Size: int64(len(notes)), Data: notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "text/plain", txt.MimeType)
	assert.True(t, strings.HasSuffix(txt.Path, ".txt"))
}
