package request

type SubmitVerificationRequest struct {
	IdentityCard string `json:"identity_card" validate:"required,len=13,numeric"`
	Address      string `json:"address" validate:"required,max=500"`
	Organization string `json:"organization" validate:"required,max=200"`
}

type DecideVerificationRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=approved rejected"`
}
