package models

import "time"

const (
	CustomerCollection = "usercreds"
	ProviderCollection = "providercreds"
)

type Role string

const (
	RoleProvider Role = "provider"
	RoleCustomer Role = "customer"
)

// Profile is the document written on signup. ID and UID both hold the
// identity id; ID is the document key.
type Profile struct {
	ID        string    `bson:"_id,omitempty" json:"-"`
	UID       string    `bson:"uid" json:"uid"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Address   string    `bson:"address" json:"address"`
	Location  GeoPoint  `bson:"location" json:"location"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
