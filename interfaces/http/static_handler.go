package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"channel-insights/domain/apperror"
	"channel-insights/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

var mimeTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".ico":  "image/x-icon",
}

const (
	textPlain   = "text/plain; charset=utf-8"
	octetStream = "application/octet-stream"
)

// ContentTypeFor returns the media type served for a file name
func ContentTypeFor(name string) string {
	if contentType, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return contentType
	}
	return octetStream
}

type IStaticHandler interface {
	Serve(ctx *gin.Context)
}

// StaticHandler serves files from a single asset root
type StaticHandler struct {
	root string
}

func NewStaticHandler(root string) (IStaticHandler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &StaticHandler{root: abs}, nil
}

// Serve maps the request path onto the asset root. Paths escaping the root
// are answered with 403 before the file system is touched.
func (h *StaticHandler) Serve(ctx *gin.Context) {
	urlPath := ctx.Request.URL.Path
	if strings.HasPrefix(urlPath, "/api/") {
		respondError(ctx, apperror.ErrNotFound)
		return
	}
	if method := ctx.Request.Method; method != http.MethodGet && method != http.MethodHead {
		ctx.Header("Allow", "GET, HEAD")
		ctx.Data(http.StatusMethodNotAllowed, textPlain, []byte("Method not allowed"))
		return
	}
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	target := filepath.Join(h.root, filepath.FromSlash(urlPath))
	if !h.contains(target) {
		ctx.Data(http.StatusForbidden, textPlain, []byte("Forbidden"))
		return
	}

	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctx.Data(http.StatusNotFound, textPlain, []byte("Not found"))
			return
		}
		logger.GetLogger().WithField("path", target).WithField("error", err).Error("Static file read failed")
		ctx.Data(http.StatusInternalServerError, textPlain, []byte("Internal server error"))
		return
	}

	ctx.Data(http.StatusOK, ContentTypeFor(target), data)
}

func (h *StaticHandler) contains(target string) bool {
	rel, err := filepath.Rel(h.root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
