package repository

import "github.com/shopspring/decimal"

// Bcrypt hash of "password", shared by both demo accounts.
const demoPasswordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

// Seed populates the account store with the two demo users: admin (id "1",
// balance 10000.00, with user "2" pre-authorised as a beneficiary) and user1
// (id "2", balance 5000.00, no beneficiaries).
func Seed(users *UserRepository) {
	admin, _ := users.Create("admin", demoPasswordHash, "admin@example.com", decimal.RequireFromString("10000.00"))
	regular, _ := users.Create("user1", demoPasswordHash, "user1@example.com", decimal.RequireFromString("5000.00"))

	users.AddBeneficiary(admin.ID, regular.ID)
}
