package models

import "time"

// Booking lifecycle states. Initiated bookings are abandoned by checkout
// session expiry; only Confirmed bookings can be canceled.
const (
	BookingStateInitiated = "initiated"
	BookingStateConfirmed = "confirmed"
	BookingStateCanceled  = "canceled"
)

// ReserverDetails is the contact information required to hold a reservation,
// distinct from the authenticated account. An empty ID means the details have
// not been persisted yet; the first successful submit creates them and every
// later submit updates in place.
type ReserverDetails struct {
	ID          string `bson:"id" json:"id"`
	AccountID   string `bson:"account_id" json:"-"`
	FirstName   string `bson:"first_name" json:"firstName"`
	LastName    string `bson:"last_name" json:"lastName"`
	PhoneNumber string `bson:"phone_number" json:"phoneNumber"`
}

// Booking is the persisted, checkout-committed version of an Outing.
type Booking struct {
	ID                string    `bson:"id" json:"id"`
	OutingID          string    `bson:"outing_id" json:"outingId"`
	AccountID         string    `bson:"account_id" json:"accountId"`
	State             string    `bson:"state" json:"state"`
	Itinerary         Itinerary `bson:"itinerary" json:"itinerary"`
	ReserverDetailsID string    `bson:"reserver_details_id,omitempty" json:"reserverDetailsId,omitempty"`
	PaymentIntentID   string    `bson:"payment_intent_id,omitempty" json:"-"`
	StripeCustomerID  string    `bson:"stripe_customer_id,omitempty" json:"-"`
	ReminderSent      bool      `bson:"reminder_sent" json:"-"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsPaid reports whether the booking carries a non-zero total.
func (b Booking) IsPaid() bool {
	return b.Itinerary.IsPaid()
}
