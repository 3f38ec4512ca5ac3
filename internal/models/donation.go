package models

import "time"

// Donation statuses with a fixed display priority
const (
	DonationStatusCurrent = "current"
	DonationStatusDonated = "donated"
	DonationStatusExpired = "expired"
)

// StatusPriority display rank of a donation status; unknown statuses sort last
func StatusPriority(status string) int {
	switch status {
	case DonationStatusCurrent:
		return 1
	case DonationStatusDonated:
		return 2
	case DonationStatusExpired:
		return 3
	default:
		return 4
	}
}

// Donation donation row joined with the donor display name
type Donation struct {
	ID             uint       `json:"id" db:"id"`
	DonorID        uint       `json:"donorId" db:"donor_id"`
	Title          string     `json:"title" db:"title"`
	Description    *string    `json:"description" db:"description"`
	FoodType       string     `json:"foodType" db:"food_type"`
	Quantity       int        `json:"quantity" db:"quantity"`
	Unit           string     `json:"unit" db:"unit"`
	ExpiryDate     time.Time  `json:"expiryDate" db:"expiry_date"`
	PickupAddress  string     `json:"pickupAddress" db:"pickup_address"`
	PickupTime     *time.Time `json:"pickupTime" db:"pickup_time"`
	Status         string     `json:"status" db:"status"`
	VolunteerID    *uint      `json:"volunteerId" db:"volunteer_id"`
	OrganizationID *uint      `json:"organizationId" db:"organization_id"`
	ImageURL       *string    `json:"imageUrl" db:"image_url"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	DonorName      string     `json:"donorName"`
}

// DonorDonationsResponse payload of GET /donor/donations/:donorId
type DonorDonationsResponse struct {
	Donations []Donation `json:"donations"`
	DonorID   uint       `json:"donorId"`
}

// CreateDonationRequest body of POST /donor/donations; imageUrl is typically the
// URL returned by the image upload endpoint
type CreateDonationRequest struct {
	Title         string     `json:"title" validate:"notblank,max=200"`
	Description   *string    `json:"description"`
	FoodType      string     `json:"foodType" validate:"notblank,max=100"`
	Quantity      int        `json:"quantity" validate:"gt=0"`
	Unit          string     `json:"unit" validate:"notblank,max=50"`
	ExpiryDate    time.Time  `json:"expiryDate"`
	PickupAddress string     `json:"pickupAddress" validate:"notblank,max=500"`
	PickupTime    *time.Time `json:"pickupTime"`
	ImageURL      *string    `json:"imageUrl"`
}

// DonationStats aggregate counts over a donor's donations
type DonationStats struct {
	Total   int `json:"total"`
	Current int `json:"current"`
	Donated int `json:"donated"`
	Expired int `json:"expired"`
}

// DonorProfile payload of GET /donor/profile/:donorId
type DonorProfile struct {
	ID            uint          `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Phone         *string       `json:"phone"`
	RoleName      string        `json:"roleName"`
	CreatedAt     time.Time     `json:"createdAt"`
	DonationStats DonationStats `json:"donationStats"`
}

// ImageUploadResponse payload of the donation image upload
type ImageUploadResponse struct {
	ImageURL  string `json:"imageUrl"`
	ObjectKey string `json:"objectKey"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
