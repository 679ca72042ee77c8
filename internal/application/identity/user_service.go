package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/weshare/backend/internal/domain/identity"
	"github.com/weshare/backend/internal/domain/sharing"
)

func sharingAddress(a AddressInput) sharing.Address {
	return sharing.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func sharingPoint(l LocationInput) sharing.GeoPoint {
	return sharing.GeoPoint{Longitude: l.Longitude, Latitude: l.Latitude}
}

// AddressInput carries a structured postal address
type AddressInput struct {
	Street  string `json:"street" binding:"omitempty,max=200"`
	City    string `json:"city" binding:"omitempty,max=100"`
	State   string `json:"state" binding:"omitempty,max=100"`
	ZipCode string `json:"zip_code" binding:"omitempty,max=20"`
	Country string `json:"country" binding:"omitempty,max=100"`
}

// LocationInput carries WGS84 coordinates
type LocationInput struct {
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	Name         *string        `json:"name" binding:"omitempty,min=1,max=100"`
	Phone        *string        `json:"phone" binding:"omitempty,max=20"`
	Availability *string        `json:"availability" binding:"omitempty,max=200"`
	ProfileImage *string        `json:"profile_image" binding:"omitempty,url"`
	Address      *AddressInput  `json:"address"`
	Location     *LocationInput `json:"location"`
}

// UserResponse represents a user profile in API responses
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	Availability string    `json:"availability,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUserResponse maps a user to its API shape
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role.String(),
		Availability: u.Availability,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

// UserService handles user profile operations
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID retrieves a user profile by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile updates the acting user's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(req.Name, req.Phone, req.Availability, req.ProfileImage); err != nil {
		return nil, err
	}
	if req.Address != nil {
		user.SetAddress(sharingAddress(*req.Address))
	}
	if req.Location != nil {
		if err := user.SetLocation(sharingPoint(*req.Location)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}
