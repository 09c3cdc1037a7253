package models

import "time"

// Device records one signed-in client of an account. Only the hash of the
// issued token is stored.
type Device struct {
	DeviceID   string    `bson:"device_id" json:"deviceId"`
	DeviceName string    `bson:"device_name,omitempty" json:"deviceName,omitempty"`
	TokenHash  string    `bson:"token_hash" json:"-"`
	LastLogin  time.Time `bson:"last_login" json:"lastLogin"`
}

// Account is a registered user of the product.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Devices      []Device  `bson:"devices" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
