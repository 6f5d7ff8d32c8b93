package site

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/akeren/teamup-site/config/router"
	"github.com/gin-gonic/gin"
)

// NewSiteController serves the public pages and their static assets. Pages
// are rendered from the templates installed on the router.
func NewSiteController(static fs.FS) *router.RESTController {
	files := http.FS(static)

	return router.NewRESTController(
		"SiteController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddRawGetHandler(c, nil, "", renderPage("index.html"))
			rs.AddRawGetHandler(c, nil, "ambassador", renderPage("ambassador.html"))
			rs.AddRawGetHandler(c, nil, "static/*filepath", serveStatic(files))
		},
	)
}

func renderPage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, nil)
	}
}

func serveStatic(files http.FileSystem) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filepath")

		// No directory listings.
		if name == "" || strings.HasSuffix(name, "/") {
			c.AbortWithStatusJSON(http.StatusNotFound, router.NotFoundResult("Not found").ToJSON())
			return
		}

		f, err := files.Open(name)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, router.NotFoundResult("Not found").ToJSON())
			return
		}
		info, err := f.Stat()
		_ = f.Close()
		if err != nil || info.IsDir() {
			c.AbortWithStatusJSON(http.StatusNotFound, router.NotFoundResult("Not found").ToJSON())
			return
		}

		c.Header("Cache-Control", "public, max-age=3600")
		c.FileFromFS(name, files)
	}
}
