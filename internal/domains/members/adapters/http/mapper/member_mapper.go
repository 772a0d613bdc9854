package mapper

import (
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
)

// Address is the transport representation of the address value object.
type Address struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// Member exposes the full member record, as the v1 endpoints do.
type Member struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// MemberName is the v2 list element.
type MemberName struct {
	Name string `json:"name"`
}

func ToDomainAddress(a Address) memberdomain.Address {
	return memberdomain.NewAddress(a.City, a.Street, a.Zipcode)
}

func FromDomainAddress(a memberdomain.Address) Address {
	return Address{City: a.City, Street: a.Street, Zipcode: a.Zipcode}
}

// ToDomainMember converts a transport member into a new domain member.
func ToDomainMember(m Member) (*memberdomain.Member, error) {
	return memberdomain.NewMember(m.Name, ToDomainAddress(m.Address))
}

func FromDomainMember(m *memberdomain.Member) Member {
	if m == nil {
		return Member{}
	}
	return Member{ID: m.ID, Name: m.Name, Address: FromDomainAddress(m.Address)}
}

func FromDomainMembers(members []*memberdomain.Member) []Member {
	result := make([]Member, 0, len(members))
	for _, m := range members {
		result = append(result, FromDomainMember(m))
	}
	return result
}

func ToMemberNames(members []*memberdomain.Member) []MemberName {
	result := make([]MemberName, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		result = append(result, MemberName{Name: m.Name})
	}
	return result
}
