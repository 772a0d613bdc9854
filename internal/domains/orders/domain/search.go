package domain

// OrderSearch filters orders. Zero fields impose no constraint.
type OrderSearch struct {
	MemberName string
	Status     Status
}

// MaxSearchResults bounds a filtered order search.
const MaxSearchResults = 1000
