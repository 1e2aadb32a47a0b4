package middleware

import (
	"fedvlm/api/contexts"
	qk "fedvlm/api/models/constants/query-kind"
	"fedvlm/api/models/dtos/errors"
	"fedvlm/api/models/results"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo"
)

/*
Echo middleware to ensure the `variantId` path parameter is shaped like
<chromosome>-<position>-<ref>-<alt>
*/
func MandateVariantIdParameter(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		variantId := c.Param("variantId")
		if !qk.LooksLikeVariantId(variantId) {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(
				fmt.Sprintf("invalid variant id %q - expected <chromosome>-<position>-<ref>-<alt>", variantId)))
		}

		gc := c.(*contexts.VlmContext)
		gc.QueryKey = results.NewQueryKey(qk.Variant, variantId)

		return next(gc)
	}
}

/*
Echo middleware to ensure a non-empty `geneSymbol` path parameter was provided
*/
func MandateGeneSymbolParameter(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		geneSymbol := c.Param("geneSymbol")
		if len(strings.TrimSpace(geneSymbol)) == 0 {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing gene symbol"))
		}

		gc := c.(*contexts.VlmContext)
		gc.QueryKey = results.NewQueryKey(qk.Gene, geneSymbol)

		return next(gc)
	}
}
