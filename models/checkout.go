package models

// CheckoutSession holds the initiation data a client needs to drive one
// checkout attempt. It lives in Redis between initiation and confirmation;
// the client secrets are opaque and passed through to the payment SDK
// unmodified.
type CheckoutSession struct {
	BookingID                   string `json:"bookingId"`
	AccountID                   string `json:"accountId"`
	PaymentIntentClientSecret   string `json:"paymentIntentClientSecret,omitempty"`
	CustomerSessionClientSecret string `json:"customerSessionClientSecret,omitempty"`
}

// ReserverDetailsInput is the submitted contact form. An empty ID selects
// the create path, a non-empty ID the update path.
type ReserverDetailsInput struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}
