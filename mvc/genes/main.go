package genes

import (
	"net/http"

	"fedvlm/api/contexts"
	"fedvlm/api/mvc"

	"github.com/labstack/echo"
)

// GenesGetByGeneSymbol answers GET /gene/:geneSymbol. Every node's exon
// list is returned whole; the coding-only track is derived per node.
func GenesGetByGeneSymbol(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("GenesGetByGeneSymbol hit", "geneSymbol", gc.QueryKey.Term, "excluded", gc.Excluded.Ids())

	aggregate, err := gc.QueryClient.Query(c.Request().Context(), gc.QueryKey)
	if err != nil {
		return mvc.RespondQueryError(c, gc.QueryKey, err)
	}

	return c.JSON(http.StatusOK, mvc.BuildSearchResponse(aggregate, gc.Excluded, gc.Registry))
}
