package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/centerthink/centerthink-api/internal/api/handler/v1/response"
	"github.com/centerthink/centerthink-api/internal/storage"
)

// FileHandler serves files behind signed download URLs. The token in the
// query string is the only credential; the store validates it.
type FileHandler struct {
	store storage.Store
}

func NewFileHandler(store storage.Store) *FileHandler {
	return &FileHandler{
		store: store,
	}
}

// HandleDownload godoc
// @Summary      Download a file via a signed URL
// @Tags         files
// @Produce      octet-stream
// @Param        token    query      string true "signed download token"
// @Success      200
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /files [get]
func (h *FileHandler) HandleDownload(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("missing token")))

		return
	}

	path, err := h.store.VerifyURL(token)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	f, err := h.store.Open(path)
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("file", "path", path))

		return
	}
	defer f.Close()

	ctx.Header("Content-Type", "application/octet-stream")
	ctx.Status(http.StatusOK)

	if _, err = io.Copy(ctx.Writer, f); err != nil {
		// Too late to change the response status.
		zap.L().Warn("file download aborted", zap.String("path", path), zap.Error(err))
	}
}
