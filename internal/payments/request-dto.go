package payments

// ChooseMethodRequest selects the payment channel at the method step.
type ChooseMethodRequest struct {
	Method string `json:"method" validate:"required,oneof=card sbp"`
}

// SubmitDetailsRequest carries the raw card input. Fields are normalized
// server-side; for the sbp method they are ignored entirely.
type SubmitDetailsRequest struct {
	CardNumber     string `json:"card_number,omitempty"`
	Expiry         string `json:"expiry,omitempty"`
	CVV            string `json:"cvv,omitempty"`
	CardholderName string `json:"cardholder_name,omitempty"`
}
