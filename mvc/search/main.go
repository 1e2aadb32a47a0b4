package search

import (
	"fmt"
	"net/http"
	"net/url"

	"fedvlm/api/contexts"

	"github.com/labstack/echo"
)

// SearchRedirect routes a free-text term to the variant or gene view.
func SearchRedirect(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("SearchRedirect hit", "term", c.QueryParam("term"), "kind", gc.QueryKey.Kind)

	location := fmt.Sprintf("/%s/%s", gc.QueryKey.Kind, url.PathEscape(gc.QueryKey.Term))
	if exclude := c.QueryParam("exclude"); exclude != "" {
		location = fmt.Sprintf("%s?exclude=%s", location, url.QueryEscape(exclude))
	}

	return c.Redirect(http.StatusFound, location)
}
