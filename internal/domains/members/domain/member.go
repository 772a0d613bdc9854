package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName = errors.New("member name is required")
)

// Address is the value object shared by members and deliveries.
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// NewAddress trims the supplied parts into an Address.
func NewAddress(city, street, zipcode string) Address {
	return Address{
		City:    strings.TrimSpace(city),
		Street:  strings.TrimSpace(street),
		Zipcode: strings.TrimSpace(zipcode),
	}
}

// IsZero reports whether no address part is set.
func (a Address) IsZero() bool {
	return a.City == "" && a.Street == "" && a.Zipcode == ""
}

// Member is a registered shop customer. Orders reference members by ID;
// the member never holds its orders.
type Member struct {
	ID      int64
	Name    string
	Address Address
}

// NewMember builds a member ensuring required invariants.
func NewMember(name string, address Address) (*Member, error) {
	member := &Member{Address: address}
	if err := member.Rename(name); err != nil {
		return nil, err
	}
	return member, nil
}

// Rename trims and validates the member name.
func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.Name = name
	return nil
}

// Relocate replaces the member's address.
func (m *Member) Relocate(address Address) {
	m.Address = address
}

// Validate re-applies core invariants for persistence.
func (m *Member) Validate() error {
	return m.Rename(m.Name)
}
