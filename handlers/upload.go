package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sanctuary/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadFiles accepts multipart form data under a "files" field, writes each
// file to the uploads directory under a collision-resistant generated name,
// and returns the public relative paths.
func UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "multipart form expected")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "no files submitted")
		return
	}

	if err := os.MkdirAll(config.Settings.UploadDir, 0755); err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, fmt.Sprintf("failed to prepare upload dir: %v", err))
		return
	}

	maxBytes := int64(config.Settings.UploadMaxMB) << 20
	paths := make([]string, 0, len(files))
	for _, file := range files {
		if maxBytes > 0 && file.Size > maxBytes {
			fail(c, http.StatusBadRequest, CodeInvalidRequest,
				fmt.Sprintf("file %s exceeds the %dMB limit", file.Filename, config.Settings.UploadMaxMB))
			return
		}

		// Keep the extension, discard the client-supplied name entirely.
		ext := strings.ToLower(filepath.Ext(file.Filename))
		name := uuid.NewString() + ext
		dst := filepath.Join(config.Settings.UploadDir, name)

		if err := c.SaveUploadedFile(file, dst); err != nil {
			fail(c, http.StatusInternalServerError, CodeInternal, fmt.Sprintf("failed to save %s: %v", file.Filename, err))
			return
		}
		paths = append(paths, "/uploads/"+name)
	}

	ok(c, paths)
}
