package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout the federated search
	service and its clients.
*/
type QueryKind string
type Phase string
type FeatureType string
