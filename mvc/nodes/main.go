package nodes

import (
	"net/http"

	"fedvlm/api/contexts"
	"fedvlm/api/models/dtos"
	"fedvlm/api/mvc"

	"github.com/labstack/echo"
)

func NodesGet(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("NodesGet hit")

	peers := gc.Registry.Nodes()
	response := dtos.NodesResponseDTO{
		Count: len(peers),
		Nodes: make([]dtos.NodeDTO, 0, len(peers)),
	}
	for _, peer := range peers {
		response.Nodes = append(response.Nodes, mvc.NodeToDto(peer))
	}

	return c.JSON(http.StatusOK, response)
}
