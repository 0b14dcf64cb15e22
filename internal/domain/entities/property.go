package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PropertyStatus represents the availability status of a listing
type PropertyStatus string

const (
	PropertyStatusDraft      PropertyStatus = "draft"
	PropertyStatusPending    PropertyStatus = "pending"
	PropertyStatusActive     PropertyStatus = "active"
	PropertyStatusUnderOffer PropertyStatus = "under_offer"
	PropertyStatusSold       PropertyStatus = "sold"
	PropertyStatusRented     PropertyStatus = "rented"
)

// Property represents a listing. Listing content (media, description,
// geodata) is owned by the marketplace front end; the offer lifecycle only
// reads and mutates the availability status. OwnerID is absent for
// platform-listed properties.
type Property struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.NullUUID  `json:"ownerId,omitempty"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	ListingType null.String    `json:"listingType,omitempty"` // sale | rent
	Status      PropertyStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   null.Time      `json:"-"`
}
