package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	httpHandler "channel-insights/interfaces/http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>hi</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "img", "logo.svg"), []byte("<svg/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data.bin"), []byte{1, 2}, 0o644))

	handler, err := httpHandler.NewStaticHandler(root)
	require.NoError(t, err)

	router := gin.New()
	router.NoRoute(handler.Serve)
	return router, root
}

func serveRaw(router *gin.Engine, rawPath string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = rawPath
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStaticHandler_ServesFiles(t *testing.T) {
	router, _ := newStaticRouter(t)

	tests := []struct {
		path        string
		contentType string
		body        string
	}{
		{"/", "text/html; charset=utf-8", "<h1>hi</h1>"},
		{"/index.html", "text/html; charset=utf-8", "<h1>hi</h1>"},
		{"/app.js", "application/javascript; charset=utf-8", "console.log(1)"},
		{"/img/logo.svg", "image/svg+xml", "<svg/>"},
		{"/data.bin", "application/octet-stream", "\x01\x02"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serveRaw(router, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestStaticHandler_NotFound(t *testing.T) {
	router, _ := newStaticRouter(t)

	w := serveRaw(router, "/missing.css")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestStaticHandler_TraversalForbidden(t *testing.T) {
	router, root := newStaticRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(root), "secret.txt"), []byte("s"), 0o644))

	w := serveRaw(router, "/../secret.txt")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden", w.Body.String())
}

func TestStaticHandler_DirectoryIsServerError(t *testing.T) {
	router, _ := newStaticRouter(t)

	w := serveRaw(router, "/img")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", w.Body.String())
}

func TestStaticHandler_UnknownAPIRoute(t *testing.T) {
	router, _ := newStaticRouter(t)

	w := serveRaw(router, "/api/nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error":true`)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", httpHandler.ContentTypeFor("a.JPEG"))
	assert.Equal(t, "image/x-icon", httpHandler.ContentTypeFor("favicon.ico"))
	assert.Equal(t, "application/json; charset=utf-8", httpHandler.ContentTypeFor("m.json"))
	assert.Equal(t, "application/octet-stream", httpHandler.ContentTypeFor("README"))
}

func TestStaticHandler_OnlyGetAndHead(t *testing.T) {
	router, _ := newStaticRouter(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/index.html", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"), method)
		assert.Equal(t, "Method not allowed", w.Body.String(), method)
	}

	req := httptest.NewRequest(http.MethodHead, "/index.html", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
