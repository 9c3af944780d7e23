package domain

// Payment stages
const (
	StageAdvance = "Advance"
	StageFinal   = "Final"
	StageFull    = "Full"
)

// caseTypeFees maps a case type to its flat total fee
var caseTypeFees = map[string]float64{
	"Civil":     50000,
	"Criminal":  80000,
	"Family":    30000,
	"Corporate": 120000,
	"Property":  60000,
}

// FeeForCaseType returns the flat fee for a case type, zero for an
// unknown type
func FeeForCaseType(caseType string) float64 {
	return caseTypeFees[caseType]
}

// CaseTypes returns the known case types with a nonzero fee
func CaseTypes() []string {
	return []string{"Civil", "Criminal", "Family", "Corporate", "Property"}
}

// PayableAmount computes the installment due for a payment stage.
// advancePercent is the share of the total fee collected up front.
func PayableAmount(totalFee, advancePercent float64, stage string) float64 {
	switch stage {
	case StageAdvance:
		return totalFee * advancePercent / 100
	case StageFinal:
		return totalFee * (100 - advancePercent) / 100
	default:
		return totalFee
	}
}

// SplitInstallment divides an installment between the firm and the
// assigned lawyer. The advance goes entirely to the lawyer, the firm
// settles at the final stage. The final stage cut is computed on the
// whole case fee rather than the installment, so a share rate larger
// than the final installment fraction drives the lawyer share
// negative. Callers see that boundary as computed.
func SplitInstallment(amount, totalFee, adminSharePercent float64, stage string) (adminShare, lawyerShare float64) {
	switch stage {
	case StageAdvance:
		return 0, amount
	case StageFinal:
		adminShare = totalFee * adminSharePercent / 100
	default:
		adminShare = amount * adminSharePercent / 100
	}
	lawyerShare = amount - adminShare
	return adminShare, lawyerShare
}
