package decision

import "bankapi/internal/decision/outcome"

// Decision points recorded by the evaluators. A trail is read back only for
// logging, metrics and audit; evaluators never branch on it.
const (
	PointPreValidation           outcome.Point = "PRE_VALIDATION"
	PointValidationFailedMissing outcome.Point = "VALIDATION_FAILED_MISSING_FIELDS"
	PointValidationFailedGeneric outcome.Point = "VALIDATION_FAILED_GENERIC"
	PointSortCodeSanitized       outcome.Point = "SORT_CODE_SANITIZED"
	PointAccountNumberSanitized  outcome.Point = "ACCOUNT_NUMBER_SANITIZED"
	PointBankNameSanitized       outcome.Point = "BANK_NAME_SANITIZED"
	PointOwnerNameSanitized      outcome.Point = "OWNER_NAME_SANITIZED"
	PointBankNameTooShort        outcome.Point = "BANK_NAME_TOO_SHORT"
	PointOwnerNameTooShort       outcome.Point = "OWNER_NAME_TOO_SHORT"
	PointAmountValidation        outcome.Point = "AMOUNT_VALIDATION"
	PointAmountSanitized         outcome.Point = "AMOUNT_SANITIZED"
	PointAmountInvalidFormat     outcome.Point = "AMOUNT_INVALID_FORMAT"
	PointAmountTooSmall          outcome.Point = "AMOUNT_TOO_SMALL"
	PointAmountTooLarge          outcome.Point = "AMOUNT_TOO_LARGE"
	PointAccountLookup           outcome.Point = "ACCOUNT_LOOKUP"
	PointAccountFound            outcome.Point = "ACCOUNT_FOUND"
	PointResultEmpty             outcome.Point = "RESULT_EMPTY"
	PointCreationAttempt         outcome.Point = "CREATION_ATTEMPT"
	PointAccountCreated          outcome.Point = "ACCOUNT_CREATED"
	PointCreationFailure         outcome.Point = "CREATION_FAILURE"
	PointVerificationStarted     outcome.Point = "ACCOUNT_VERIFICATION_STARTED"
	PointVerificationFailed      outcome.Point = "ACCOUNT_VERIFICATION_FAILED"
	PointVerificationPassed      outcome.Point = "ACCOUNT_VERIFICATION_PASSED"
	PointTransferAttempt         outcome.Point = "TRANSFER_ATTEMPT"
	PointTransferCompleted       outcome.Point = "TRANSFER_COMPLETED"
	PointTransferFailed          outcome.Point = "TRANSFER_FAILED"
	PointBalanceCheck            outcome.Point = "BALANCE_CHECK"
	PointInsufficientFunds       outcome.Point = "INSUFFICIENT_FUNDS"
	PointBalanceUpdate           outcome.Point = "BALANCE_UPDATE"
	PointBalanceUpdated          outcome.Point = "BALANCE_UPDATED"
	PointResultSuccess           outcome.Point = "RESULT_SUCCESS"
	PointCreationSuccess         outcome.Point = "CREATION_SUCCESS"
)
