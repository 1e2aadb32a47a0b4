package contexts

import (
	"fedvlm/api/models"
	"fedvlm/api/models/nodes"
	"fedvlm/api/models/results"
	"fedvlm/api/services/filtering"
	"fedvlm/api/services/query"
	"fedvlm/api/services/sessions"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

type (
	// "Helper" Context to pass into routes that need
	// the service singletons and the values middleware resolved
	VlmContext struct {
		echo.Context
		Config         *models.Config
		Log            *zap.SugaredLogger
		Registry       *nodes.Registry
		QueryClient    *query.Client
		SessionService *sessions.SessionService

		// set by middleware
		QueryKey results.QueryKey
		Excluded filtering.ExclusionSet
		Session  *sessions.Session
	}
)
