package identity

import (
	"regexp"
	"strings"

	"github.com/weshare/backend/internal/domain/shared"
	"github.com/weshare/backend/internal/domain/sharing"
)

// Role determines which side of the marketplace a user acts on
type Role string

const (
	RoleDonor    Role = "donor"
	RoleReceiver Role = "receiver"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleDonor || r == RoleReceiver
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a registered donor or receiver.
// Credential issuance lives outside this service; the profile here backs
// authorization, notification delivery and donation matching.
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	Phone        string
	Role         Role
	Address      sharing.Address   `gorm:"embedded;embeddedPrefix:address_"`
	Location     *sharing.GeoPoint `gorm:"embedded;embeddedPrefix:location_"`
	Availability string
	ProfileImage string
}

// NewUser creates a new user profile
func NewUser(name, email string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be donor or receiver")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Role:              role,
	}, nil
}

// UpdateProfile overwrites the supplied profile fields
func (u *User) UpdateProfile(name, phone, availability, profileImage *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
		}
		u.Name = trimmed
	}
	if phone != nil {
		u.Phone = *phone
	}
	if availability != nil {
		u.Availability = *availability
	}
	if profileImage != nil {
		u.ProfileImage = *profileImage
	}
	u.Touch()
	return nil
}

// SetAddress sets the user's postal address
func (u *User) SetAddress(address sharing.Address) {
	u.Address = address
	u.Touch()
}

// SetLocation sets the user's home coordinates
func (u *User) SetLocation(location sharing.GeoPoint) error {
	if !location.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Location coordinates are out of range")
	}
	loc := location
	u.Location = &loc
	u.Touch()
	return nil
}

// IsDonor returns true if the user acts as a donor
func (u *User) IsDonor() bool {
	return u.Role == RoleDonor
}

// IsReceiver returns true if the user acts as a receiver
func (u *User) IsReceiver() bool {
	return u.Role == RoleReceiver
}
