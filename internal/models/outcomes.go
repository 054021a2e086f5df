package models

const (
	OutcomeDetailsUpdated         = "DETAILS_UPDATED"
	OutcomeDetailsAlreadyCorrect  = "DETAILS_ALREADY_CORRECT"
	OutcomeCallBackScheduled      = "CALL_BACK_SCHEDULED"
	OutcomeNoClearOutcome         = "NO_CLEAR_OUTCOME"
	OutcomeAbruptCall             = "ABRUPT_CALL"
	OutcomeCustomerDeclinedUpdate = "CUSTOMER_DECLINED_UPDATE"
	OutcomeValidationFailed       = "VALIDATION_FAILED"
	OutcomeOTPValidationFailed    = "OTP_VALIDATION_FAILED"
	OutcomeTechnicalError         = "TECHNICAL_ERROR"
	OutcomeCallDisconnected       = "CALL_DISCONNECTED"
	OutcomeWrongNumber            = "WRONG_NUMBER"
)

// Outcomes is the vocabulary offered by the outcome dialog, in display order.
var Outcomes = []string{
	OutcomeDetailsUpdated,
	OutcomeDetailsAlreadyCorrect,
	OutcomeCallBackScheduled,
	OutcomeNoClearOutcome,
	OutcomeAbruptCall,
	OutcomeCustomerDeclinedUpdate,
	OutcomeValidationFailed,
	OutcomeOTPValidationFailed,
	OutcomeTechnicalError,
	OutcomeCallDisconnected,
	OutcomeWrongNumber,
}

// OutcomeTone groups outcomes for badge colouring.
func OutcomeTone(outcome string) string {
	switch outcome {
	case OutcomeDetailsUpdated, OutcomeDetailsAlreadyCorrect:
		return "success"
	case OutcomeCallBackScheduled:
		return "info"
	case OutcomeAbruptCall, OutcomeCustomerDeclinedUpdate:
		return "warning"
	case OutcomeValidationFailed, OutcomeOTPValidationFailed, OutcomeTechnicalError, OutcomeCallDisconnected, OutcomeWrongNumber:
		return "error"
	default:
		return "neutral"
	}
}
