package middleware

import (
	"fedvlm/api/contexts"
	"fedvlm/api/models/dtos/errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo"
)

/*
Echo middleware to resolve the `sessionId` path parameter into a live session
*/
func MandateSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionId := c.Param("sessionId")
		id, err := uuid.Parse(sessionId)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(
				fmt.Sprintf("invalid session id %s - please provide a valid uuid", sessionId)))
		}

		gc := c.(*contexts.VlmContext)
		session, ok := gc.SessionService.Get(id)
		if !ok {
			return c.JSON(http.StatusNotFound, errors.CreateSimpleNotFound(
				fmt.Sprintf("session %s not found", sessionId)))
		}

		session.Touch()
		gc.Session = session
		return next(gc)
	}
}
