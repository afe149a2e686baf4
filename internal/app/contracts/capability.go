package contracts

// CapabilityClaims is the minimum set of claims binding a management link to
// one remote event and one booker. IssuedAt enables an optional max-age
// policy in the orchestrator.
type CapabilityClaims struct {
	EventID     string `json:"eid"`
	BookerEmail string `json:"sub"`
	IssuedAt    int64  `json:"iat"`
}

// CapabilityService mints and verifies the stateless management tokens used
// to reschedule or cancel a booking without an account. Verification is pure
// recomputation; nothing is stored.
type CapabilityService interface {
	Sign(claims CapabilityClaims) (encodedPayload, signature string, err error)
	Verify(encodedPayload, signature string) (*CapabilityClaims, error)
}
