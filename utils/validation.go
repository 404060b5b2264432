package utils

import (
	"regexp"
	"strings"
)

// MinDonationAmount is the smallest accepted donation, in rupees
const MinDonationAmount = 100

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// ValidateDonorEmail checks if the email is valid
func ValidateDonorEmail(email string) (bool, string) {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return false, "Invalid email format. Please enter a valid email address"
	}
	return true, ""
}

// ValidateDonorPhone checks if the phone number is valid
func ValidateDonorPhone(phone string) (bool, string) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if !phoneRegex.MatchString(cleaned) {
		return false, "Invalid phone number"
	}
	return true, ""
}

// ValidateDonorName checks if the donor name is present and sane
func ValidateDonorName(name string) (bool, string) {
	if len(strings.TrimSpace(name)) < 2 {
		return false, "Name must be at least 2 characters long"
	}
	return true, ""
}

// NormalizePAN uppercases and trims a PAN. The field is optional and its
// format is not validated; whatever the donor typed is stored uppercased,
// so a typo still reaches the receipt rather than blocking the donation.
func NormalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}

// ValidateDonationAmount checks the amount is a whole rupee figure of at
// least MinDonationAmount
func ValidateDonationAmount(amount int64) (bool, string) {
	if amount < MinDonationAmount {
		return false, "Minimum donation amount is Rs. 100"
	}
	return true, ""
}
