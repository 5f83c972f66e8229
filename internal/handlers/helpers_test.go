package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SecondChance/internal/config"
	"SecondChance/internal/handlers"
	"SecondChance/internal/repo"
	"SecondChance/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	router http.Handler
	cfg    *config.Config
	db     *gorm.DB
}

// newTestEnv собирает роутер поверх in-memory SQLite и временного каталога загрузок.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn := repo.NewConnector(fmt.Sprintf("file:h_%s?mode=memory&cache=shared", name))
	db, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	cfg := &config.Config{
		AuthSecret:  "test-secret",
		TokenTTL:    time.Hour,
		UploadDir:   t.TempDir(),
		UploadMaxMB: 1,
	}
	logger := zap.NewNop().Sugar()

	userSvc := service.NewUserService(repo.NewUserRepository(db), cfg.AuthSecret, cfg.TokenTTL)
	itemSvc := service.NewItemService(repo.NewItemRepository(db), logger)
	h := handlers.NewHandler(userSvc, itemSvc, logger, cfg)
	return &testEnv{router: h.Router, cfg: cfg, db: db}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) doJSON(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return e.do(t, method, target, r, "application/json")
}

func multipartItem(t *testing.T, fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
