package serviceInfo

import (
	"fedvlm/api/contexts"
	serviceInfo "fedvlm/api/models/constants/service-info"

	"net/http"

	"github.com/labstack/echo"
)

// Format: https://github.com/ga4gh-discovery/ga4gh-service-info
func GetServiceInfo(c echo.Context) error {
	gc := c.(*contexts.VlmContext)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": map[string]interface{}{
			"artifact": serviceInfo.SERVICE_ARTIFACT,
			"group":    serviceInfo.SERVICE_TYPE_NO_VER,
			"version":  gc.Config.SemVer,
		},
		"id":          serviceInfo.SERVICE_ID,
		"name":        serviceInfo.SERVICE_NAME,
		"description": serviceInfo.SERVICE_DESCRIPTION,
		"network": map[string]interface{}{
			"nodes":           len(gc.Registry.Ids()),
			"variantEndpoint": gc.Config.Network.VariantEndpoint,
			"geneEndpoint":    gc.Config.Network.GeneEndpoint,
			"mock":            gc.Config.Network.UseMock,
		},
		"contactUrl": gc.Config.ServiceContact,
		"version":    gc.Config.SemVer,
	})
}
