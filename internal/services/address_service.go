package services

import (
	"drukmart/internal/models"
	"drukmart/internal/repositories"
)

// AddressRequest carries the mutable fields of a shipping address.
type AddressRequest struct {
	FullName     string `json:"full_name" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Phone        string `json:"phone" validate:"required,max=20"`
	AddressLine1 string `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line2" validate:"omitempty,max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	PostalCode   string `json:"postal_code" validate:"omitempty,max=20"`
	Country      string `json:"country" validate:"required,max=100"`
	IsDefault    bool   `json:"is_default"`
}

// AddressService handles business logic for shipping addresses. The
// default-address invariant itself lives in the repository, inside its
// transactions.
type AddressService struct {
	addressRepo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(addressRepo repositories.AddressRepository) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
	}
}

// ListAddresses retrieves all of the user's addresses.
func (s *AddressService) ListAddresses(userID string) ([]models.ShippingAddress, error) {
	return s.addressRepo.ListByUser(userID)
}

// GetAddress retrieves one of the user's addresses.
func (s *AddressService) GetAddress(userID, id string) (*models.ShippingAddress, error) {
	return s.addressRepo.GetByID(userID, id)
}

// CreateAddress creates a new address for the user.
func (s *AddressService) CreateAddress(userID string, req AddressRequest) (*models.ShippingAddress, error) {
	address := addressFromRequest(userID, req)
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddress updates one of the user's addresses.
func (s *AddressService) UpdateAddress(userID, id string, req AddressRequest) (*models.ShippingAddress, error) {
	address := addressFromRequest(userID, req)
	address.ID = id
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress removes one of the user's addresses.
func (s *AddressService) DeleteAddress(userID, id string) error {
	return s.addressRepo.Delete(userID, id)
}

func addressFromRequest(userID string, req AddressRequest) *models.ShippingAddress {
	return &models.ShippingAddress{
		UserID:       userID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
}
