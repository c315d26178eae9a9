package service

import (
	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/apperr"
	"github.com/bancohq/banco-api/internal/models"
	"github.com/bancohq/banco-api/internal/repository"
)

// UpdateUserRequest lists the fields a user may change on their own profile.
// Anything else is rejected by construction: there is simply no way to
// express a password or balance update through this type.
type UpdateUserRequest struct {
	Email         *string
	Beneficiaries *[]string
}

// UserService handles profile, balance and beneficiary operations.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetAllUsers() []models.UserView {
	return s.users.FindAll()
}

func (s *UserService) GetUserByID(id string) (*models.UserView, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	return userToView(user), nil
}

// UpdateUser applies a partial profile update. At least one field must be
// set; email uniqueness and beneficiary validity are enforced by the store
// inside Update so concurrent updates cannot interleave past the checks.
func (s *UserService) UpdateUser(id string, req UpdateUserRequest) (*models.UserView, error) {
	if req.Email == nil && req.Beneficiaries == nil {
		return nil, apperr.Invalid("No valid fields provided for update")
	}

	updated, err := s.users.Update(id, repository.UserUpdate{
		Email:         req.Email,
		Beneficiaries: req.Beneficiaries,
	})
	if err != nil {
		return nil, err
	}
	return userToView(updated), nil
}

// AddBeneficiary authorises beneficiaryID for unrestricted-amount transfers
// from userID. The store checks and appends atomically.
func (s *UserService) AddBeneficiary(userID, beneficiaryID string) (*models.UserView, error) {
	user, err := s.users.AddBeneficiary(userID, beneficiaryID)
	if err != nil {
		return nil, err
	}
	return userToView(user), nil
}

// RemoveBeneficiary revokes a previously granted authorisation.
func (s *UserService) RemoveBeneficiary(userID, beneficiaryID string) (*models.UserView, error) {
	user, err := s.users.RemoveBeneficiary(userID, beneficiaryID)
	if err != nil {
		return nil, err
	}
	return userToView(user), nil
}

// GetBalance returns the user's current balance.
func (s *UserService) GetBalance(userID string) (decimal.Decimal, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

func userToView(u *models.User) *models.UserView {
	return &models.UserView{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Balance:       u.Balance,
		Beneficiaries: append([]string{}, u.Beneficiaries...),
	}
}
