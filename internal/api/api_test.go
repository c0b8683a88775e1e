package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/filedrop/internal/api"
	"github.com/rise-and-shine/filedrop/internal/intake"
	"github.com/rise-and-shine/filedrop/internal/usecase"
	"github.com/rise-and-shine/filedrop/pkg/filestore/diskwr"
	"github.com/rise-and-shine/filedrop/pkg/http/server"
	"github.com/rise-and-shine/filedrop/pkg/http/server/middleware"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type errorEnvelope struct {
	TraceID any `json:"trace_id"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestApp(t *testing.T) (*fiber.App, *diskwr.Store) {
	t.Helper()

	store, err := diskwr.New(diskwr.Config{RootDir: t.TempDir()})
	require.NoError(t, err)

	policy := intake.NewPolicy(16<<20, []string{"txt", "pdf", "png", "zip"})
	clock := usecase.WithClock(func() time.Time { return testNow })

	router := api.NewRouter(
		policy,
		usecase.NewUploadFile(policy, store, clock),
		usecase.NewListFiles(store),
		usecase.NewHealthCheck(store.Root(), clock),
	)

	srv := server.NewHTTPServer(server.Config{BodyLimit: 32 << 20}, []server.Middleware{
		middleware.NewErrorHandlerMW(false),
	})
	srv.RegisterRouter(router.Register)

	return srv.App(), store
}

// multipartBody builds a multipart form with a single file field.
func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)

	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	app, store := newTestApp(t)

	body, contentType := multipartBody(t, "file", "report.PDF", strings.Repeat("a", 1024))
	req := httptest.NewRequest(fiber.MethodPost, "/upload", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out usecase.UploadFileOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.True(t, out.Success)
	assert.Equal(t, "File uploaded successfully", out.Message)
	assert.Equal(t, "report_20240301_100000.pdf", out.Filename)
	assert.Equal(t, int64(1024), out.Size)
	assert.Equal(t, "20240301_100000", out.Timestamp)

	exists, err := store.Exists(req.Context(), out.Filename)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpload_MissingFilePart(t *testing.T) {
	app, _ := newTestApp(t)

	// multipart form without a "file" field
	body, contentType := multipartBody(t, "attachment", "report.pdf", "data")
	req := httptest.NewRequest(fiber.MethodPost, "/upload", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "MISSING_FILE_PART", envelope.Error.Code)
}

func TestUpload_NotMultipart(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/upload", strings.NewReader(`{"file":"x"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "MISSING_FILE_PART", envelope.Error.Code)
}

func TestUpload_DisallowedExtension(t *testing.T) {
	app, store := newTestApp(t)

	body, contentType := multipartBody(t, "file", "malware.exe", "payload")
	req := httptest.NewRequest(fiber.MethodPost, "/upload", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "EXTENSION_NOT_ALLOWED", envelope.Error.Code)

	infos, err := store.List(req.Context())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestFiles_Listing(t *testing.T) {
	app, store := newTestApp(t)
	ctx := httptest.NewRequest(fiber.MethodGet, "/files", nil).Context()

	_, err := store.Upload(ctx, "beta_20240301_100000.txt", strings.NewReader("bb"))
	require.NoError(t, err)
	_, err = store.Upload(ctx, "alpha_20240301_100000.txt", strings.NewReader("a"))
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/files", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out usecase.ListFilesOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	require.Len(t, out.Files, 2)
	assert.Equal(t, "alpha_20240301_100000.txt", out.Files[0].Name)
	assert.Equal(t, int64(1), out.Files[0].Size)
	assert.Equal(t, "beta_20240301_100000.txt", out.Files[1].Name)
	assert.Equal(t, int64(2), out.Files[1].Size)
}

func TestFiles_EmptyListing(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/files", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// an empty listing serializes as an empty array, not null
	assert.JSONEq(t, `{"files":[]}`, string(raw))
}

func TestHealth(t *testing.T) {
	app, store := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out usecase.HealthCheckOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.Equal(t, "healthy", out.Status)
	assert.Equal(t, store.Root(), out.UploadFolder)
	assert.Equal(t, "2024-03-01T10:00:00Z", out.Timestamp)
}

func TestIndex_ShowsConstraints(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	page := string(raw)
	assert.Contains(t, page, "pdf, png, txt, zip")
	assert.Contains(t, page, "16MB")
	assert.Contains(t, page, `enctype="multipart/form-data"`)
}
