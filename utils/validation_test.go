package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDonationAmountBoundary(t *testing.T) {
	ok, _ := ValidateDonationAmount(99)
	assert.False(t, ok, "99 is below the minimum")

	ok, _ = ValidateDonationAmount(100)
	assert.True(t, ok, "100 is the minimum accepted amount")

	ok, _ = ValidateDonationAmount(500)
	assert.True(t, ok)

	ok, _ = ValidateDonationAmount(0)
	assert.False(t, ok)

	ok, _ = ValidateDonationAmount(-100)
	assert.False(t, ok)
}

func TestNormalizePAN(t *testing.T) {
	assert.Equal(t, "ABCDE1234F", NormalizePAN("abcde1234f"))
	assert.Equal(t, "ABCDE1234F", NormalizePAN("  ABCDE1234F "))

	// Optional field: empty stays empty.
	assert.Equal(t, "", NormalizePAN(""))

	// No format check: the value is stored as typed, uppercased.
	assert.Equal(t, "ABCDE1234", NormalizePAN("abcde1234"))
}

func TestValidateDonorEmail(t *testing.T) {
	ok, _ := ValidateDonorEmail("asha@example.com")
	assert.True(t, ok)

	ok, _ = ValidateDonorEmail("not-an-email")
	assert.False(t, ok)

	ok, _ = ValidateDonorEmail("")
	assert.False(t, ok)
}

func TestValidateDonorPhone(t *testing.T) {
	ok, _ := ValidateDonorPhone("+919999999999")
	assert.True(t, ok)

	ok, _ = ValidateDonorPhone("9999999999")
	assert.True(t, ok)

	ok, _ = ValidateDonorPhone("12")
	assert.False(t, ok)

	ok, _ = ValidateDonorPhone("")
	assert.False(t, ok)
}

func TestValidateDonorName(t *testing.T) {
	ok, _ := ValidateDonorName("Asha Rao")
	assert.True(t, ok)

	ok, _ = ValidateDonorName(" ")
	assert.False(t, ok)
}
