package repository

import (
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/apperr"
	"github.com/bancohq/banco-api/internal/models"
)

// UserUpdate lists exactly the fields a caller may change on a stored user.
// Nil fields are left untouched. Balance is only ever set by the transfer
// service; handlers never expose it as a writable field.
type UserUpdate struct {
	Email         *string
	Beneficiaries *[]string
	Balance       *decimal.Decimal
}

// UserRepository is the in-memory account store. All access goes through an
// RWMutex so the store is safe under gin's per-request goroutines. Reads
// return copies; mutation happens only via Create, Update, AddBeneficiary,
// RemoveBeneficiary and Delete, each of which validates and applies inside
// one critical section so concurrent callers cannot interleave past a check.
type UserRepository struct {
	mu    sync.RWMutex
	users []*models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create stores a new user under a fresh sequential id (max existing numeric
// id + 1, or "1" for an empty store). Username and email uniqueness is
// enforced here, under the write lock.
func (r *UserRepository) Create(username, passwordHash, email string, balance decimal.Decimal) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByUsernameLocked(username) != nil {
		return nil, apperr.Invalid("User with this username already exists")
	}
	if r.findByEmailLocked(email) != nil {
		return nil, apperr.Invalid("User with this email already exists")
	}

	user := &models.User{
		ID:            strconv.Itoa(r.nextIDLocked()),
		Username:      username,
		PasswordHash:  passwordHash,
		Email:         email,
		Balance:       balance,
		Beneficiaries: []string{},
		CreatedAt:     time.Now().UTC(),
	}
	r.users = append(r.users, user)
	return copyUser(user), nil
}

// FindByID returns a copy of the stored user, or a not-found error when the
// id is empty or unknown.
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	if id == "" {
		return nil, apperr.NotFound("User not found")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.findLocked(id)
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return copyUser(user), nil
}

// FindByUsername returns a copy of the matching user, or nil when absent.
func (r *UserRepository) FindByUsername(username string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if user := r.findByUsernameLocked(username); user != nil {
		return copyUser(user)
	}
	return nil
}

// FindByEmail returns a copy of the matching user, or nil when absent.
func (r *UserRepository) FindByEmail(email string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if user := r.findByEmailLocked(email); user != nil {
		return copyUser(user)
	}
	return nil
}

// Update merges the given fields into the stored record. A new email must not
// belong to another user and a beneficiary list must only reference existing
// users other than the owner; both checks run in the same critical section
// that applies the change, and nothing is written when any check fails.
func (r *UserRepository) Update(id string, upd UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findLocked(id)
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	if upd.Email != nil {
		if existing := r.findByEmailLocked(*upd.Email); existing != nil && existing.ID != id {
			return nil, apperr.Invalid("User with this email already exists")
		}
	}
	if upd.Beneficiaries != nil {
		for _, beneficiaryID := range *upd.Beneficiaries {
			if beneficiaryID == id {
				return nil, apperr.Invalid("Cannot add yourself as a beneficiary")
			}
			if r.findLocked(beneficiaryID) == nil {
				return nil, apperr.NotFound("Beneficiary user not found")
			}
		}
	}

	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Beneficiaries != nil {
		user.Beneficiaries = append([]string{}, (*upd.Beneficiaries)...)
	}
	if upd.Balance != nil {
		user.Balance = *upd.Balance
	}
	return copyUser(user), nil
}

// AddBeneficiary appends beneficiaryID to the user's list. Existence, self
// and duplicate checks happen under the write lock together with the append,
// so concurrent adds can neither lose an entry nor slip in a duplicate.
func (r *UserRepository) AddBeneficiary(userID, beneficiaryID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findLocked(userID)
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	if r.findLocked(beneficiaryID) == nil {
		return nil, apperr.NotFound("Beneficiary user not found")
	}
	if userID == beneficiaryID {
		return nil, apperr.Invalid("Cannot add yourself as a beneficiary")
	}
	for _, id := range user.Beneficiaries {
		if id == beneficiaryID {
			return nil, apperr.Invalid("User is already in the beneficiaries list")
		}
	}

	user.Beneficiaries = append(user.Beneficiaries, beneficiaryID)
	return copyUser(user), nil
}

// RemoveBeneficiary deletes beneficiaryID from the user's list, with the
// membership check and the removal in one critical section.
func (r *UserRepository) RemoveBeneficiary(userID, beneficiaryID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findLocked(userID)
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	found := false
	kept := make([]string, 0, len(user.Beneficiaries))
	for _, id := range user.Beneficiaries {
		if id == beneficiaryID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return nil, apperr.Invalid("User is not in the beneficiaries list")
	}

	user.Beneficiaries = kept
	return copyUser(user), nil
}

// Delete removes a user. Unused in normal operation; kept for test resets.
func (r *UserRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return true
		}
	}
	return false
}

// FindAll returns every user projected without the password hash.
func (r *UserRepository) FindAll() []models.UserView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	views := make([]models.UserView, 0, len(r.users))
	for _, user := range r.users {
		views = append(views, models.UserView{
			ID:            user.ID,
			Username:      user.Username,
			Email:         user.Email,
			Balance:       user.Balance,
			Beneficiaries: append([]string{}, user.Beneficiaries...),
		})
	}
	return views
}

// IsBeneficiary reports whether beneficiaryID is in the user's beneficiary
// list. The relation is directed: A listing B says nothing about B listing A.
func (r *UserRepository) IsBeneficiary(userID, beneficiaryID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.findLocked(userID)
	if user == nil {
		return false
	}
	for _, id := range user.Beneficiaries {
		if id == beneficiaryID {
			return true
		}
	}
	return false
}

func (r *UserRepository) findLocked(id string) *models.User {
	for _, user := range r.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func (r *UserRepository) findByUsernameLocked(username string) *models.User {
	for _, user := range r.users {
		if user.Username == username {
			return user
		}
	}
	return nil
}

func (r *UserRepository) findByEmailLocked(email string) *models.User {
	for _, user := range r.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}

func (r *UserRepository) nextIDLocked() int {
	max := 0
	for _, user := range r.users {
		if n, err := strconv.Atoi(user.ID); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

func copyUser(u *models.User) *models.User {
	clone := *u
	clone.Beneficiaries = append([]string{}, u.Beneficiaries...)
	return &clone
}
