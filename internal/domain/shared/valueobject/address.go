package valueobject

import (
	"fmt"
	"strings"
)

// Address is a value object representing a delivery address
// It is immutable - construct a new Address to change it
type Address struct {
	city   string
	street string
	house  string
	phone  string
}

// NewAddress creates a new Address; city, street and house are required
func NewAddress(city, street, house, phone string) (Address, error) {
	city = strings.TrimSpace(city)
	street = strings.TrimSpace(street)
	house = strings.TrimSpace(house)
	phone = strings.TrimSpace(phone)

	if city == "" {
		return Address{}, fmt.Errorf("city is required")
	}
	if len(city) > 100 {
		return Address{}, fmt.Errorf("city cannot exceed 100 characters")
	}
	if street == "" {
		return Address{}, fmt.Errorf("street is required")
	}
	if len(street) > 200 {
		return Address{}, fmt.Errorf("street cannot exceed 200 characters")
	}
	if house == "" {
		return Address{}, fmt.Errorf("house is required")
	}
	if len(house) > 20 {
		return Address{}, fmt.Errorf("house cannot exceed 20 characters")
	}
	if len(phone) > 20 {
		return Address{}, fmt.Errorf("phone cannot exceed 20 characters")
	}

	return Address{
		city:   city,
		street: street,
		house:  house,
		phone:  phone,
	}, nil
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// Street returns the street
func (a Address) Street() string {
	return a.street
}

// House returns the house number
func (a Address) House() string {
	return a.house
}

// Phone returns the contact phone
func (a Address) Phone() string {
	return a.phone
}

// IsEmpty returns true if no fields are set
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// String returns a single-line representation of the address
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := []string{a.city, a.street, a.house}
	if a.phone != "" {
		parts = append(parts, a.phone)
	}
	return strings.Join(parts, ", ")
}
