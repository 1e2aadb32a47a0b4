package phase

import "fedvlm/api/models/constants"

const (
	Idle    constants.Phase = "Idle"
	Pending constants.Phase = "Pending"
	Success constants.Phase = "Success"
	Error   constants.Phase = "Error"
)

func IsSettled(p constants.Phase) bool {
	return p == Success || p == Error
}
