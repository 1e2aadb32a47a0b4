package variants

import (
	"net/http"

	"fedvlm/api/contexts"
	"fedvlm/api/mvc"

	"github.com/labstack/echo"
)

// VariantsGetByVariantId answers GET /variant/:variantId with the
// aggregated answer of every node, minus the optionally excluded ones.
func VariantsGetByVariantId(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("VariantsGetByVariantId hit", "variantId", gc.QueryKey.Term, "excluded", gc.Excluded.Ids())

	aggregate, err := gc.QueryClient.Query(c.Request().Context(), gc.QueryKey)
	if err != nil {
		return mvc.RespondQueryError(c, gc.QueryKey, err)
	}

	return c.JSON(http.StatusOK, mvc.BuildSearchResponse(aggregate, gc.Excluded, gc.Registry))
}
