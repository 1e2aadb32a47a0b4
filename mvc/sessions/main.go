package sessions

import (
	"net/http"
	"strconv"

	"fedvlm/api/contexts"
	"fedvlm/api/models/dtos/errors"
	"fedvlm/api/mvc"

	"github.com/labstack/echo"
)

func SessionsCreate(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Session = gc.SessionService.Create()
	gc.Log.Infow("SessionsCreate hit", "sessionId", gc.Session.Id.String())

	return c.JSON(http.StatusCreated, mvc.BuildSessionResponse(gc))
}

func SessionsGet(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("SessionsGet hit", "sessionId", gc.Session.Id.String())

	return c.JSON(http.StatusOK, mvc.BuildSessionResponse(gc))
}

// SessionsSubmitQuery starts resolving `term` for the session. With
// `wait=true` the response is held until the query settles or the client
// goes away; otherwise the session is returned as it stands (usually
// Pending).
func SessionsSubmitQuery(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("SessionsSubmitQuery hit", "sessionId", gc.Session.Id.String(), "key", gc.QueryKey.String())

	done := gc.Session.SubmitKey(gc.QueryKey)

	if wait, _ := strconv.ParseBool(c.QueryParam("wait")); wait {
		select {
		case <-done:
		case <-c.Request().Context().Done():
		}
	}

	return c.JSON(http.StatusAccepted, mvc.BuildSessionResponse(gc))
}

func SessionsToggleNode(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	nodeId := c.Param("nodeId")
	if nodeId == "" {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("missing node id"))
	}
	gc.Log.Infow("SessionsToggleNode hit", "sessionId", gc.Session.Id.String(), "nodeId", nodeId)

	gc.Session.Toggle(nodeId)
	return c.JSON(http.StatusOK, mvc.BuildSessionResponse(gc))
}

func SessionsExcludeAllNodes(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("SessionsExcludeAllNodes hit", "sessionId", gc.Session.Id.String())

	gc.Session.ExcludeAll(gc.Registry)
	return c.JSON(http.StatusOK, mvc.BuildSessionResponse(gc))
}

func SessionsExcludeNoNodes(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("SessionsExcludeNoNodes hit", "sessionId", gc.Session.Id.String())

	gc.Session.ExcludeNone()
	return c.JSON(http.StatusOK, mvc.BuildSessionResponse(gc))
}

func SessionsDelete(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Infow("SessionsDelete hit", "sessionId", gc.Session.Id.String())

	gc.SessionService.Delete(gc.Session.Id)
	return c.NoContent(http.StatusNoContent)
}
