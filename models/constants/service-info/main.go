package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Federated VLM Search Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Federated VLM search API!"
	SERVICE_DESCRIPTION ServiceInfo = "Searches a federated variant-level-matching network and aggregates per-node answers."

	SERVICE_ARTIFACT    ServiceInfo = "fedvlm"
	SERVICE_VERSION     ServiceInfo = "0.1.0"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.fedvlm:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
