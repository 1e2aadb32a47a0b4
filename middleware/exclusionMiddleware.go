package middleware

import (
	"fedvlm/api/contexts"
	"fedvlm/api/services/filtering"
	"fedvlm/api/utils"

	"github.com/labstack/echo"
)

/*
Echo middleware to prepare the context for an optionally provided
comma separated `exclude` HTTP query parameter of peer node ids
*/
func CalibrateOptionalExcludedNodes(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.VlmContext)
		gc.Excluded = filtering.NewExclusionSet(utils.SplitCommaSeparated(c.QueryParam("exclude"))...)
		return next(gc)
	}
}
