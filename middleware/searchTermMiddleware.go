package middleware

import (
	"fedvlm/api/contexts"
	"fedvlm/api/models/dtos/errors"
	"fedvlm/api/models/results"
	"net/http"
	"strings"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure a non-empty `term` HTTP query parameter was provided
*/
func MandateSearchTermAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		term := c.QueryParam("term")
		if len(strings.TrimSpace(term)) == 0 {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing search term"))
		}

		// classification happens once per submission
		gc := c.(*contexts.VlmContext)
		gc.QueryKey = results.KeyForSearchTerm(term)

		return next(gc)
	}
}
