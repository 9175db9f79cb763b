// Package preset holds the quick-test scenarios that overwrite part of a
// transaction to exercise a representative risk profile.
package preset

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/model"
)

// Scenario is a named partial overlay. Only Amount, Time, Merchant and Location
// are overwritten; every other field of the target is left alone.
type Scenario struct {
	Name     string
	Label    string
	RiskHint string
	Merchant model.Merchant
	Location model.Location
	Amount   float64
	Time     int
}

// Scenario names.
const (
	Coffee     = "coffee"
	Online     = "online"
	Moderate   = "moderate"
	ATM        = "atm"
	Suspicious = "suspicious"
)

var catalog = []Scenario{
	{Name: Coffee, Label: "Coffee Run", RiskHint: "Low Risk", Amount: 5, Time: 10, Merchant: model.MerchantGrocery, Location: model.LocationHomeCity},
	{Name: Online, Label: "Online Shop", RiskHint: "Low Risk", Amount: 100, Time: 19, Merchant: model.MerchantOnline, Location: model.LocationHomeCity},
	{Name: Moderate, Label: "Moderate", RiskHint: "Medium Risk", Amount: 200, Time: 14, Merchant: model.MerchantShopping, Location: model.LocationNearbyCity},
	{Name: ATM, Label: "Late ATM", RiskHint: "High Risk", Amount: 500, Time: 3, Merchant: model.MerchantATM, Location: model.LocationDifferentState},
	{Name: Suspicious, Label: "Suspicious", RiskHint: "Very High Risk", Amount: 5000, Time: 2, Merchant: model.MerchantTravel, Location: model.LocationAbroad},
}

// All returns the scenarios in display order.
func All() []Scenario {
	out := make([]Scenario, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the scenario names in display order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a scenario by name, ignoring case.
func Lookup(name string) (Scenario, error) {
	for _, s := range catalog {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q (have %s)", common.ErrUnknownPreset, name, strings.Join(Names(), ", "))
}

// Apply returns input with the scenario's fields merged in.
func (s Scenario) Apply(input model.TransactionInput) model.TransactionInput {
	input.SetAmountValue(s.Amount)
	input.Time = s.Time
	input.Merchant = s.Merchant
	input.Location = s.Location
	return input
}
