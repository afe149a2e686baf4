package requests

type CreateBooking struct {
	Name            string `json:"name" validate:"required,min=2,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Date            string `json:"date" validate:"required,bookdate"`
	Time            string `json:"time" validate:"required,hhmm"`
	DurationMinutes int    `json:"duration,omitempty" validate:"omitempty,min=5,max=240"`
}

type RescheduleBooking struct {
	Date string `json:"date" validate:"required,bookdate"`
	Time string `json:"time" validate:"required,hhmm"`
}

// Capability carries the two opaque management-link tokens exactly as they
// appeared in the URL: p is the encoded payload, t the signature.
type Capability struct {
	Payload   string
	Signature string
}
