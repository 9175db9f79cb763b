package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fraudwatch/internal/common"
)

// Merchant is the merchant category of a transaction.
type Merchant string

// Merchant categories accepted by the prediction service.
const (
	MerchantGrocery       Merchant = "Grocery"
	MerchantGasStation    Merchant = "Gas Station"
	MerchantRestaurant    Merchant = "Restaurant"
	MerchantOnline        Merchant = "Online"
	MerchantATM           Merchant = "ATM"
	MerchantTravel        Merchant = "Travel"
	MerchantShopping      Merchant = "Shopping"
	MerchantEntertainment Merchant = "Entertainment"
)

// Location describes where a transaction happened relative to the card holder.
type Location string

// Locations accepted by the prediction service.
const (
	LocationHomeCity       Location = "Home City"
	LocationNearbyCity     Location = "Nearby City"
	LocationDifferentState Location = "Different State"
	LocationAbroad         Location = "Abroad"
	LocationHighRiskArea   Location = "High Risk Area"
)

// TransactionType is the payment instrument used.
type TransactionType string

// Transaction types accepted by the prediction service.
const (
	TypeCredit   TransactionType = "Credit"
	TypeDebit    TransactionType = "Debit"
	TypeTransfer TransactionType = "Transfer"
)

// Device is the channel the transaction was initiated from.
type Device string

// Devices accepted by the prediction service.
const (
	DeviceMobile   Device = "Mobile"
	DeviceWeb      Device = "Web"
	DeviceATM      Device = "ATM"
	DeviceInPerson Device = "In-Person"
)

// Catalog order matters: the dashboard cycles through values in this order.
var (
	Merchants = []Merchant{
		MerchantGrocery, MerchantGasStation, MerchantRestaurant, MerchantOnline,
		MerchantATM, MerchantTravel, MerchantShopping, MerchantEntertainment,
	}
	Locations = []Location{
		LocationHomeCity, LocationNearbyCity, LocationDifferentState,
		LocationAbroad, LocationHighRiskArea,
	}
	TransactionTypes = []TransactionType{TypeCredit, TypeDebit, TypeTransfer}
	Devices          = []Device{DeviceMobile, DeviceWeb, DeviceATM, DeviceInPerson}
)

// IsValid reports whether m is one of the known merchant categories.
func (m Merchant) IsValid() bool { return contains(Merchants, m) }

// IsValid reports whether l is one of the known locations.
func (l Location) IsValid() bool { return contains(Locations, l) }

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool { return contains(TransactionTypes, t) }

// IsValid reports whether d is one of the known devices.
func (d Device) IsValid() bool { return contains(Devices, d) }

// ParseMerchant resolves a merchant category, ignoring case and surrounding space.
func ParseMerchant(s string) (Merchant, error) { return parse(Merchants, s, "merchant") }

// ParseLocation resolves a location, ignoring case and surrounding space.
func ParseLocation(s string) (Location, error) { return parse(Locations, s, "location") }

// ParseTransactionType resolves a transaction type, ignoring case and surrounding space.
func ParseTransactionType(s string) (TransactionType, error) {
	return parse(TransactionTypes, s, "type")
}

// ParseDevice resolves a device, ignoring case and surrounding space.
func ParseDevice(s string) (Device, error) { return parse(Devices, s, "device") }

func contains[T ~string](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func parse[T ~string](values []T, s, field string) (T, error) {
	needle := strings.TrimSpace(s)
	for _, candidate := range values {
		if strings.EqualFold(string(candidate), needle) {
			return candidate, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q is not one of %s", common.ErrInvalidField, field, s, join(values))
}

// Cycle returns the value offset steps away from current, wrapping around.
func Cycle[T ~string](values []T, current T, offset int) T {
	idx := 0
	for i, candidate := range values {
		if candidate == current {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+offset)%n+n)%n]
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
