package http

import (
	"fmt"
	"net/http"
	"time"

	"channel-insights/domain/apperror"
	"channel-insights/domain/dto"
	"channel-insights/infrastructure/filecsv"
	"channel-insights/infrastructure/logger"
	"channel-insights/usecase"

	"github.com/gin-gonic/gin"
)

// IChannelHandler defines the HTTP handlers for the channel insights actions
type IChannelHandler interface {
	// State
	GetState(ctx *gin.Context)

	// Channel operations
	LoadChannel(ctx *gin.Context)
	LoadMore(ctx *gin.Context)

	// Selection operations
	ToggleSelection(ctx *gin.Context)
	SelectAll(ctx *gin.Context)

	// Analysis operations
	Analyze(ctx *gin.Context)
	ExportCSV(ctx *gin.Context)

	// Favorite operations
	ListFavorites(ctx *gin.Context)
	AddFavorite(ctx *gin.Context)
	ClearFavorites(ctx *gin.Context)
	RemoveFavorite(ctx *gin.Context)
	LoadFavorite(ctx *gin.Context)
}

// ChannelHandler implements the channel insights HTTP handlers
type ChannelHandler struct {
	session   usecase.IChannelSession
	exportDir string
	now       func() time.Time
}

// NewChannelHandler creates a new channel handler. When exportDir is set,
// every export is also written there.
func NewChannelHandler(session usecase.IChannelSession, exportDir string) IChannelHandler {
	return &ChannelHandler{session: session, exportDir: exportDir, now: time.Now}
}

// GetState handles GET /api/state
func (h *ChannelHandler) GetState(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.session.Snapshot())
}

// LoadChannel handles POST /api/channel/load
func (h *ChannelHandler) LoadChannel(ctx *gin.Context) {
	var req dto.LoadChannelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, fmt.Errorf("%w: %s", apperror.ErrInputValidation, err.Error()))
		return
	}

	snapshot, err := h.session.LoadChannel(ctx.Request.Context(), req.Input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

// LoadMore handles POST /api/channel/more
func (h *ChannelHandler) LoadMore(ctx *gin.Context) {
	snapshot, err := h.session.LoadMore(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

// ToggleSelection handles POST /api/selection/toggle
func (h *ChannelHandler) ToggleSelection(ctx *gin.Context) {
	var req dto.ToggleSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, fmt.Errorf("%w: %s", apperror.ErrInputValidation, err.Error()))
		return
	}

	snapshot, err := h.session.Toggle(req.VideoID, req.Selected)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

// SelectAll handles POST /api/selection/all
func (h *ChannelHandler) SelectAll(ctx *gin.Context) {
	var req dto.SelectAllRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, fmt.Errorf("%w: %s", apperror.ErrInputValidation, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, h.session.SelectAll(req.Selected))
}

// Analyze handles POST /api/analysis
func (h *ChannelHandler) Analyze(ctx *gin.Context) {
	snapshot, err := h.session.Analyze(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

// ExportCSV handles GET /api/analysis/export
func (h *ChannelHandler) ExportCSV(ctx *gin.Context) {
	name, document, err := h.session.Export(h.now())
	if err != nil {
		respondError(ctx, err)
		return
	}

	if h.exportDir != "" {
		if _, err := filecsv.WriteExport(h.exportDir, name, document); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Could not keep a copy of the export")
		}
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	ctx.Data(http.StatusOK, filecsv.ContentType, []byte(document))
}

// ListFavorites handles GET /api/favorites
func (h *ChannelHandler) ListFavorites(ctx *gin.Context) {
	favorites, err := h.session.Favorites(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavorite handles POST /api/favorites
func (h *ChannelHandler) AddFavorite(ctx *gin.Context) {
	favorites, err := h.session.AddFavorite(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"favorites": favorites})
}

// ClearFavorites handles DELETE /api/favorites
func (h *ChannelHandler) ClearFavorites(ctx *gin.Context) {
	favorites, err := h.session.ClearFavorites(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// RemoveFavorite handles DELETE /api/favorites/:id
func (h *ChannelHandler) RemoveFavorite(ctx *gin.Context) {
	favorites, err := h.session.RemoveFavorite(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// LoadFavorite handles POST /api/favorites/:id/load
func (h *ChannelHandler) LoadFavorite(ctx *gin.Context) {
	snapshot, err := h.session.LoadFavorite(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}
