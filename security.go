package pdfimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// currencyCodeRegex checks for the format: 3 uppercase letters.
var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency checks that code is an ISO 4217 alphabetic code.
func ValidateCurrency(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid currency format: must be 3 uppercase letters, got %q", code)
	}
	return nil
}

// ValidateISINFormat checks the ISIN structure, without the check digit.
func ValidateISINFormat(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}
	return nil
}

// ValidateISIN checks if a string is a validly formatted ISIN, check digit included.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	if err := ValidateISINFormat(isin); err != nil {
		return err
	}

	// Convert letters to numbers for check digit calculation
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// Apply a variation of the Luhn algorithm
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit := int(isin[11] - '0')
	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}
	return nil
}

// Security is a tradeable asset identified by its ISIN.
//
// Securities are created once by the Securities registry and shared by every
// item that refers to them.
type Security struct {
	isin     string
	name     string
	currency string
}

// NewSecurity returns a security definition, typically to seed a Securities registry.
func NewSecurity(isin, name, currency string) (*Security, error) {
	if err := ValidateISINFormat(isin); err != nil {
		return nil, fmt.Errorf("invalid ISIN %q: %w", isin, err)
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("invalid currency for %s: %w", isin, err)
	}
	return &Security{isin: isin, name: name, currency: currency}, nil
}

func (s *Security) ISIN() string     { return s.isin }
func (s *Security) Name() string     { return s.name }
func (s *Security) Currency() string { return s.currency }

// String implements the fmt.Stringer interface.
func (s *Security) String() string { return s.name + " (" + s.isin + ")" }
