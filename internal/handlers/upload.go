package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"myblog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// withUpload stores the multipart avatar field under the upload directory
// before the signup handler runs and attaches the upload descriptor to the
// context. Each upload gets a fresh uuid filename (keeping the original
// extension), so concurrent requests never contend on a path. A missing file
// is recorded as an empty descriptor; the validator owns that case.
func (h *Handler) withUpload(c *gin.Context) {
	file, err := c.FormFile(fieldAvatar)
	if err != nil {
		// http.ErrMissingFile and form parse errors both mean "no usable upload".
		c.Set(ctxUploadKey, myblog.Upload{})
		c.Next()
		return
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	storedPath := filepath.Join(h.cfg.UploadDir, name)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		_ = c.Error(fmt.Errorf("store avatar upload: %w", err))
		c.Abort()
		return
	}

	c.Set(ctxUploadKey, myblog.Upload{
		OriginalName: file.Filename,
		StoredPath:   storedPath,
	})
	c.Next()
}

// uploadFrom returns the descriptor attached by withUpload.
func uploadFrom(c *gin.Context) myblog.Upload {
	if v, ok := c.Get(ctxUploadKey); ok {
		if up, ok := v.(myblog.Upload); ok {
			return up
		}
	}
	return myblog.Upload{}
}
