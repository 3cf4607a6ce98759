package entities

import (
	"strings"
	"time"
)

// CustomerTier is the commercial tier assigned to a customer.

type CustomerTier string

const (
	CustomerTierBronze  CustomerTier = "Bronze"
	CustomerTierSilver  CustomerTier = "Silver"
	CustomerTierGold    CustomerTier = "Gold"
	CustomerTierPremium CustomerTier = "Premium"
)

// ParseCustomerTier maps free text to a tier, defaulting to Bronze.
func ParseCustomerTier(s string) CustomerTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silver":
		return CustomerTierSilver
	case "gold":
		return CustomerTierGold
	case "premium":
		return CustomerTierPremium
	default:
		return CustomerTierBronze
	}
}

// Customer owns work orders and projects.
//
// Identity is the (Company, Contact) pair compared case-insensitively; Contact may be empty.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (company_key-index): company_key
//   - uniqueness sentinel item "customer#<company_key>#<contact_key>"

type Customer struct {
	ID        string       `json:"id"`
	Company   string       `json:"company"`
	Contact   string       `json:"contact"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Address   string       `json:"address"`
	Tier      CustomerTier `json:"tier"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CompanyKey is the normalized matching key for a company name.
func CompanyKey(company string) string {
	return strings.ToLower(strings.TrimSpace(company))
}

// ContactKey is the normalized matching key for a contact name.
func ContactKey(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}

// SameCompany reports whether the customer belongs to the given company name.
func (c Customer) SameCompany(company string) bool {
	return CompanyKey(c.Company) == CompanyKey(company)
}

// SameIdentity reports whether the customer is the (company, contact) pair.
func (c Customer) SameIdentity(company, contact string) bool {
	return c.SameCompany(company) && ContactKey(c.Contact) == ContactKey(contact)
}
