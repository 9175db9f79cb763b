// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/fraudwatch/internal/common"
)

// Field bounds.
const (
	MaxHour      = 23
	MaxDaysSince = 365
	DefaultHour  = 12
)

// Field names used by SetField and by the wire format.
const (
	FieldAmount            = "amount"
	FieldTime              = "time"
	FieldMerchant          = "merchant"
	FieldLocation          = "location"
	FieldType              = "type"
	FieldDevice            = "device"
	FieldDaysSince         = "daysSince"
	FieldTransactionsToday = "transactionsToday"
)

// TransactionInput describes a candidate transaction to be scored.
//
// AmountText keeps exactly what the user typed. It is only parsed when the
// transaction is submitted, so a half-typed value like "12." survives edits.
type TransactionInput struct {
	AmountText        string
	Merchant          Merchant
	Location          Location
	Type              TransactionType
	Device            Device
	Time              int
	DaysSince         int
	TransactionsToday int
}

// DefaultTransactionInput returns the form defaults.
func DefaultTransactionInput() TransactionInput {
	return TransactionInput{
		AmountText: "",
		Time:       DefaultHour,
		Merchant:   MerchantGrocery,
		Location:   LocationHomeCity,
		Type:       TypeCredit,
		Device:     DeviceMobile,
	}
}

// Reset restores every field to its default.
func (t *TransactionInput) Reset() {
	*t = DefaultTransactionInput()
}

// Amount parses AmountText. ok is false when the text is not a finite number
// greater than zero.
func (t TransactionInput) Amount() (amount float64, ok bool) {
	text := strings.TrimSpace(t.AmountText)
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// SetAmount stores raw amount text. Any text is accepted; validation happens at
// submission.
func (t *TransactionInput) SetAmount(raw string) {
	t.AmountText = raw
}

// SetAmountValue stores a numeric amount in its shortest text form.
func (t *TransactionInput) SetAmountValue(v float64) {
	t.AmountText = FormatAmount(v)
}

// SetTime sets the hour of day.
func (t *TransactionInput) SetTime(hour int) error {
	if hour < 0 || hour > MaxHour {
		return fmt.Errorf("%w: time %d outside 0-%d", common.ErrInvalidField, hour, MaxHour)
	}
	t.Time = hour
	return nil
}

// SetDaysSince sets the number of days since the previous transaction.
func (t *TransactionInput) SetDaysSince(days int) error {
	if days < 0 || days > MaxDaysSince {
		return fmt.Errorf("%w: daysSince %d outside 0-%d", common.ErrInvalidField, days, MaxDaysSince)
	}
	t.DaysSince = days
	return nil
}

// SetTransactionsToday sets the count of transactions already made today.
func (t *TransactionInput) SetTransactionsToday(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: transactionsToday %d is negative", common.ErrInvalidField, n)
	}
	t.TransactionsToday = n
	return nil
}

// SetMerchant sets the merchant category.
func (t *TransactionInput) SetMerchant(m Merchant) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: merchant %q", common.ErrInvalidField, m)
	}
	t.Merchant = m
	return nil
}

// SetLocation sets the location.
func (t *TransactionInput) SetLocation(l Location) error {
	if !l.IsValid() {
		return fmt.Errorf("%w: location %q", common.ErrInvalidField, l)
	}
	t.Location = l
	return nil
}

// SetType sets the transaction type.
func (t *TransactionInput) SetType(tt TransactionType) error {
	if !tt.IsValid() {
		return fmt.Errorf("%w: type %q", common.ErrInvalidField, tt)
	}
	t.Type = tt
	return nil
}

// SetDevice sets the device.
func (t *TransactionInput) SetDevice(d Device) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: device %q", common.ErrInvalidField, d)
	}
	t.Device = d
	return nil
}

// SetField sets a field by its wire name from text. On error the input is left
// unchanged.
func (t *TransactionInput) SetField(name, value string) error {
	switch name {
	case FieldAmount:
		t.SetAmount(value)
		return nil
	case FieldTime:
		n, err := parseInt(name, value)
		if err != nil {
			return err
		}
		return t.SetTime(n)
	case FieldDaysSince:
		n, err := parseInt(name, value)
		if err != nil {
			return err
		}
		return t.SetDaysSince(n)
	case FieldTransactionsToday:
		n, err := parseInt(name, value)
		if err != nil {
			return err
		}
		return t.SetTransactionsToday(n)
	case FieldMerchant:
		m, err := ParseMerchant(value)
		if err != nil {
			return err
		}
		t.Merchant = m
	case FieldLocation:
		l, err := ParseLocation(value)
		if err != nil {
			return err
		}
		t.Location = l
	case FieldType:
		tt, err := ParseTransactionType(value)
		if err != nil {
			return err
		}
		t.Type = tt
	case FieldDevice:
		d, err := ParseDevice(value)
		if err != nil {
			return err
		}
		t.Device = d
	default:
		return fmt.Errorf("%w: unknown field %q", common.ErrInvalidField, name)
	}
	return nil
}

// FormatAmount renders an amount without trailing zeros ("5", "12.5").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", common.ErrInvalidField, field, value)
	}
	return n, nil
}
