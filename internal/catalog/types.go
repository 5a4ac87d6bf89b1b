// Package catalog defines the records exchanged with the Alexis Autos API.
// Field names and JSON tags mirror the wire contract exactly; the client adds
// no derived fields.
package catalog

// Transmission values accepted for cars.
const (
	TransmissionAutomatic = "Automatic"
	TransmissionManual    = "Manual"
)

// Booking status values. New bookings are always created Pending.
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
)

// Tyre categories.
const (
	CategoryPremium  = "Premium"
	CategoryMidRange = "Mid-Range"
	CategoryBudget   = "Budget"
)

// Car is a vehicle in the sales inventory.
type Car struct {
	ID           int      `json:"id"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Engine       string   `json:"engine"`
	Price        float64  `json:"price"`
	Image        string   `json:"image"`
	Sold         bool     `json:"sold"`
	Mileage      int      `json:"mileage"`
	Transmission string   `json:"transmission"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
}

// TyreSpecs is the EU label data for a tyre.
type TyreSpecs struct {
	Fuel  string `json:"fuel"`
	Wet   string `json:"wet"`
	Noise int    `json:"noise"`
}

// TyreProduct is a stocked tyre line.
type TyreProduct struct {
	ID         int       `json:"id"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	Size       string    `json:"size"`
	Price      float64   `json:"price"`
	OfferPrice *float64  `json:"offerPrice,omitempty"`
	Quantity   int       `json:"quantity"`
	Category   string    `json:"category"`
	Image      string    `json:"image"`
	Specs      TyreSpecs `json:"specs"`
}

// HasOffer reports whether the offer price should be displayed as a
// discount. An offer equal to or above the list price does not count.
func (t TyreProduct) HasOffer() bool {
	return t.OfferPrice != nil && *t.OfferPrice < t.Price
}

// TyreBrand is keyed by name; there is no numeric id.
type TyreBrand struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ServiceItem is a workshop service offered for booking.
type ServiceItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Booking is a customer booking request.
type Booking struct {
	ID           int    `json:"id"`
	CustomerName string `json:"customerName"`
	Contact      string `json:"contact"`
	ServiceType  string `json:"serviceType"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
}

// User is an admin account. The password is write-only and never read back.
type User struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// OpeningHours is a single day row of the opening hours table.
type OpeningHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// CompanyInfo is the whole-aggregate company settings value. Partial saves
// overlay one top-level slice onto the current aggregate and write the whole
// thing back.
type CompanyInfo struct {
	Contact struct {
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Whatsapp string `json:"whatsapp"`
	} `json:"contact"`
	Address struct {
		Lines []string `json:"lines"`
	} `json:"address"`
	OpeningHours []OpeningHours `json:"openingHours"`
	Facilities   []string       `json:"facilities"`
}

// ContactInfo mirrors CompanyInfo.Contact for partial section saves.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
}

// Banner is the site-wide notice. The store also raises it unilaterally on
// connectivity failure, with Action set to the offered recovery.
type Banner struct {
	Active bool   `json:"active"`
	Reason string `json:"reason"`
	Action string `json:"action,omitempty"`
}

// Banner actions offered alongside a connectivity notice.
const (
	BannerActionRetry = "retry"
	BannerActionDemo  = "demo"
)

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// StockUpdate is the body of the relative stock adjustment call.
type StockUpdate struct {
	Delta int `json:"delta"`
}

// StatusUpdate is the body of the booking status transition call.
type StatusUpdate struct {
	Status string `json:"status"`
}

// PasswordUpdate is the body of the per-username password change call.
type PasswordUpdate struct {
	Password string `json:"password"`
}

// SettingsUpdate is the whole-aggregate settings write, keyed by the
// settings-name discriminator ("banner" or "companyInfo").
type SettingsUpdate struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Settings keys.
const (
	SettingBanner      = "banner"
	SettingCompanyInfo = "companyInfo"
)
