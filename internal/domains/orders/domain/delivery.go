package domain

import memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"

// DeliveryStatus tracks shipping progress.
type DeliveryStatus string

const (
	DeliveryReady DeliveryStatus = "READY"
	DeliveryComp  DeliveryStatus = "COMP"
)

// Delivery is owned by exactly one order.
type Delivery struct {
	ID      int64
	Address memberdomain.Address
	Status  DeliveryStatus
}

// NewDelivery prepares a delivery to address.
func NewDelivery(address memberdomain.Address) *Delivery {
	return &Delivery{Address: address, Status: DeliveryReady}
}
