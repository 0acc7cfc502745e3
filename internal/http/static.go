package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticFileConfig represents configuration for static file serving
type StaticFileConfig struct {
	URLPath  string // URL prefix, e.g. /media
	FilePath string // directory on disk
}

// ServeStaticFiles exposes each directory read-only under its URL prefix.
// Missing directories are created so a fresh install can serve uploads immediately.
func ServeStaticFiles(router *gin.Engine, configs []StaticFileConfig) error {
	for _, config := range configs {
		absPath, err := filepath.Abs(config.FilePath)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for %s: %v", config.FilePath, err)
		}
		if err := os.MkdirAll(absPath, 0o755); err != nil {
			return fmt.Errorf("failed to create static directory %s: %v", absPath, err)
		}

		prefix := "/" + strings.Trim(config.URLPath, "/")
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(absPath)))

		handler := func(c *gin.Context) {
			// Directory listings are never served
			if strings.HasSuffix(c.Request.URL.Path, "/") {
				c.Status(http.StatusNotFound)
				return
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
		}

		router.GET(prefix+"/*path", handler)
		router.HEAD(prefix+"/*path", handler)
	}

	return nil
}
