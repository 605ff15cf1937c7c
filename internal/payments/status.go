package payments

// Step is the payment wizard's position. The set is closed; every
// transition handles each member explicitly.
type Step string

const (
	StepMethod     Step = "method"
	StepDetails    Step = "details"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
)

func (s Step) IsValid() bool {
	switch s {
	case StepMethod, StepDetails, StepProcessing, StepSuccess:
		return true
	default:
		return false
	}
}

// Method is the selected payment channel. SBP is the bank-app redirect
// method; it carries no card fields and skips card validation entirely.
type Method string

const (
	MethodCard Method = "card"
	MethodSBP  Method = "sbp"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodCard, MethodSBP:
		return true
	default:
		return false
	}
}
