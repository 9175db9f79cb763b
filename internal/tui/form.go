package tui

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/fraudwatch/internal/model"
)

// field is a row of the transaction form.
type field int

const (
	fieldAmount field = iota
	fieldTime
	fieldMerchant
	fieldLocation
	fieldType
	fieldDevice
	fieldDaysSince
	fieldTransactionsToday
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldAmount:            "Amount ($)",
	fieldTime:              "Time (hour)",
	fieldMerchant:          "Merchant",
	fieldLocation:          "Location",
	fieldType:              "Type",
	fieldDevice:            "Device",
	fieldDaysSince:         "Days Since Last",
	fieldTransactionsToday: "Transactions Today",
}

func (f field) label() string {
	return fieldLabels[f]
}

func (f field) next() field {
	return (f + 1) % fieldCount
}

func (f field) prev() field {
	return (f + fieldCount - 1) % fieldCount
}

// step moves a non-text field by delta: enums cycle, numbers are clamped to
// their valid range.
func (f field) step(in *model.TransactionInput, delta int) error {
	switch f {
	case fieldTime:
		return in.SetTime(clamp(in.Time+delta, 0, model.MaxHour))
	case fieldMerchant:
		return in.SetMerchant(model.Cycle(model.Merchants, in.Merchant, delta))
	case fieldLocation:
		return in.SetLocation(model.Cycle(model.Locations, in.Location, delta))
	case fieldType:
		return in.SetType(model.Cycle(model.TransactionTypes, in.Type, delta))
	case fieldDevice:
		return in.SetDevice(model.Cycle(model.Devices, in.Device, delta))
	case fieldDaysSince:
		return in.SetDaysSince(clamp(in.DaysSince+delta, 0, model.MaxDaysSince))
	case fieldTransactionsToday:
		return in.SetTransactionsToday(max(in.TransactionsToday+delta, 0))
	default:
		return nil
	}
}

// value renders the field's current value.
func (f field) value(in model.TransactionInput) string {
	switch f {
	case fieldAmount:
		return in.AmountText
	case fieldTime:
		return fmt.Sprintf("%02d:00", in.Time)
	case fieldMerchant:
		return string(in.Merchant)
	case fieldLocation:
		return string(in.Location)
	case fieldType:
		return string(in.Type)
	case fieldDevice:
		return string(in.Device)
	case fieldDaysSince:
		return strconv.Itoa(in.DaysSince)
	case fieldTransactionsToday:
		return strconv.Itoa(in.TransactionsToday)
	default:
		return ""
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
