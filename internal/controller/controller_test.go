package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPredictor records submissions and answers with a fixed response.
type stubPredictor struct {
	err    error
	result *model.PredictionResult
	inputs []model.TransactionInput
	calls  atomic.Int32
}

func (s *stubPredictor) Submit(_ context.Context, input model.TransactionInput) (*model.PredictionResult, error) {
	s.calls.Add(1)
	s.inputs = append(s.inputs, input)
	return s.result, s.err
}

func fraudResult() *model.PredictionResult {
	return &model.PredictionResult{
		Status:              "Fraud Detected",
		IsFraud:             true,
		RiskScore:           92,
		ClassicalConfidence: 95,
		QuantumConfidence:   88,
		Agreement:           "Strong",
		Reasons:             []string{"High amount", "Unusual location", "Late hour"},
	}
}

func legitResult() *model.PredictionResult {
	return &model.PredictionResult{
		Status:              "Legitimate",
		RiskScore:           8,
		ClassicalConfidence: 90,
		QuantumConfidence:   93,
		Agreement:           "Strong",
		Reasons:             []string{"Normal amount"},
	}
}

func withAmount(t *testing.T, c *Controller, amount string) {
	t.Helper()
	require.NoError(t, c.SetField(model.FieldAmount, amount))
}

func TestNew(t *testing.T) {
	c := New()

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, model.DefaultTransactionInput(), c.Input())
	assert.Nil(t, c.Result())
	assert.NoError(t, c.Err())
	assert.False(t, c.InFlight())
}

func TestSubmit_InvalidAmountIsRejectedLocally(t *testing.T) {
	for _, amount := range []string{"", "0", "-1", "-0.01", "abc", "1e", "NaN"} {
		t.Run(amount, func(t *testing.T) {
			c := New()
			withAmount(t, c, amount)
			p := &stubPredictor{result: legitResult()}

			sub, err := c.Submit()

			require.Error(t, err)
			assert.True(t, common.IsValidation(err))
			assert.ErrorIs(t, err, common.ErrInvalidAmount)
			assert.Equal(t, Submission{}, sub)
			assert.Equal(t, StateIdle, c.State())
			assert.False(t, c.InFlight())
			assert.Equal(t, err, c.Err())
			assert.Equal(t, int32(0), p.calls.Load())
		})
	}
}

func TestSubmit_SecondSubmitWhileInFlightIsNoop(t *testing.T) {
	c := New()
	withAmount(t, c, "100")

	first, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, c.State())

	withAmount(t, c, "200")
	second, err := c.Submit()

	assert.ErrorIs(t, err, common.ErrSubmitInFlight)
	assert.Equal(t, Submission{}, second)
	assert.Equal(t, StateSubmitting, c.State())
	assert.True(t, c.InFlight())
	assert.NoError(t, c.Err(), "a rejected duplicate submit is not a user-visible error")

	_, err = c.ApplyPreset(preset.Coffee)
	assert.ErrorIs(t, err, common.ErrSubmitInFlight)
	assert.Equal(t, "200", c.Input().AmountText, "rejected preset leaves the form alone")

	assert.Equal(t, ResolutionSucceeded, c.Resolve(first.Seq, legitResult(), nil))

	third, err := c.Submit()
	require.NoError(t, err)
	assert.Greater(t, third.Seq, first.Seq)
}

func TestSubmit_SnapshotIsIndependentOfLaterEdits(t *testing.T) {
	c := New()
	withAmount(t, c, "100")

	sub, err := c.Submit()
	require.NoError(t, err)

	withAmount(t, c, "999")
	require.NoError(t, c.SetField(model.FieldMerchant, "ATM"))

	assert.Equal(t, "100", sub.Input.AmountText)
	assert.Equal(t, model.MerchantGrocery, sub.Input.Merchant)
	assert.Equal(t, StateSubmitting, c.State(), "editing during a request keeps it in flight")
}

func TestApplyPreset_Suspicious(t *testing.T) {
	c := New()
	require.NoError(t, c.SetField(model.FieldDevice, "Web"))

	sub, err := c.ApplyPreset(preset.Suspicious)
	require.NoError(t, err)

	assert.Equal(t, StateSubmitting, c.State())
	assert.Equal(t, "5000", sub.Input.AmountText)
	assert.Equal(t, 2, sub.Input.Time)
	assert.Equal(t, model.MerchantTravel, sub.Input.Merchant)
	assert.Equal(t, model.LocationAbroad, sub.Input.Location)
	assert.Equal(t, model.DeviceWeb, sub.Input.Device, "fields outside the preset are kept")
	assert.Equal(t, sub.Input, c.Input())
}

func TestApplyPreset_Unknown(t *testing.T) {
	c := New()

	_, err := c.ApplyPreset("jackpot")

	assert.ErrorIs(t, err, common.ErrUnknownPreset)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, model.DefaultTransactionInput(), c.Input())
}

func TestEndToEnd_FraudVerdict(t *testing.T) {
	c := New()
	for field, value := range map[string]string{
		model.FieldAmount:            "5000",
		model.FieldTime:              "2",
		model.FieldMerchant:          "Travel",
		model.FieldLocation:          "Abroad",
		model.FieldType:              "Credit",
		model.FieldDevice:            "Mobile",
		model.FieldDaysSince:         "0",
		model.FieldTransactionsToday: "0",
	} {
		require.NoError(t, c.SetField(field, value))
	}

	p := &stubPredictor{result: fraudResult()}
	sub, err := c.Submit()
	require.NoError(t, err)

	res := c.Execute(context.Background(), p, sub)

	assert.Equal(t, ResolutionSucceeded, res, "success signals that a history refresh should follow")
	assert.Equal(t, StateSuccess, c.State())
	assert.Equal(t, fraudResult(), c.Result())
	require.Len(t, p.inputs, 1)
	assert.Equal(t, "5000", p.inputs[0].AmountText)
	assert.Equal(t, model.LocationAbroad, p.inputs[0].Location)
}

func TestResolve_FailureKeepsPriorResult(t *testing.T) {
	c := New()
	withAmount(t, c, "50")

	sub, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, ResolutionSucceeded, c.Resolve(sub.Seq, legitResult(), nil))

	sub, err = c.Submit()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, c.State())

	boom := &common.TransportError{Op: "POST /predict", StatusCode: 503, Err: errors.New("unavailable")}
	assert.Equal(t, ResolutionFailed, c.Resolve(sub.Seq, nil, boom))

	assert.Equal(t, StateFailed, c.State())
	assert.Equal(t, boom, c.Err())
	assert.Equal(t, legitResult(), c.Result(), "failure does not erase the previous verdict")
	assert.False(t, c.InFlight())
}

func TestResolve_NilResultWithoutErrorIsTransportFailure(t *testing.T) {
	c := New()
	withAmount(t, c, "50")
	sub, err := c.Submit()
	require.NoError(t, err)

	assert.Equal(t, ResolutionFailed, c.Resolve(sub.Seq, nil, nil))
	assert.True(t, common.IsTransport(c.Err()))
	assert.Nil(t, c.Result())
}

func TestResolve_UnknownSequenceIgnored(t *testing.T) {
	c := New()
	withAmount(t, c, "50")
	sub, err := c.Submit()
	require.NoError(t, err)

	assert.Equal(t, ResolutionIgnored, c.Resolve(sub.Seq+1, fraudResult(), nil))
	assert.Equal(t, ResolutionIgnored, c.Resolve(0, fraudResult(), nil))
	assert.Equal(t, StateSubmitting, c.State())
	assert.True(t, c.InFlight())

	assert.Equal(t, ResolutionSucceeded, c.Resolve(sub.Seq, fraudResult(), nil))
	assert.Equal(t, ResolutionIgnored, c.Resolve(sub.Seq, legitResult(), nil), "a response is applied once")
	assert.Equal(t, fraudResult(), c.Result())
}

func TestClear_ResetsEverything(t *testing.T) {
	states := map[string]func(t *testing.T, c *Controller){
		"idle": func(*testing.T, *Controller) {},
		"success": func(t *testing.T, c *Controller) {
			sub, err := c.ApplyPreset(preset.ATM)
			require.NoError(t, err)
			c.Resolve(sub.Seq, fraudResult(), nil)
		},
		"failed": func(t *testing.T, c *Controller) {
			sub, err := c.ApplyPreset(preset.Online)
			require.NoError(t, err)
			c.Resolve(sub.Seq, nil, errors.New("down"))
		},
		"validation error": func(t *testing.T, c *Controller) {
			withAmount(t, c, "-5")
			_, err := c.Submit()
			require.Error(t, err)
		},
		"submitting": func(t *testing.T, c *Controller) {
			_, err := c.ApplyPreset(preset.Suspicious)
			require.NoError(t, err)
		},
	}

	for name, setup := range states {
		t.Run(name, func(t *testing.T) {
			c := New()
			require.NoError(t, c.SetField(model.FieldTransactionsToday, "9"))
			require.NoError(t, c.SetField(model.FieldType, "Transfer"))
			setup(t, c)

			c.Clear()

			assert.Equal(t, model.DefaultTransactionInput(), c.Input())
			assert.Nil(t, c.Result())
			assert.NoError(t, c.Err())
			assert.Equal(t, StateIdle, c.State())
		})
	}
}

func TestClear_DropsLateResponse(t *testing.T) {
	c := New()
	sub, err := c.ApplyPreset(preset.Suspicious)
	require.NoError(t, err)

	c.Clear()

	_, err = c.Submit()
	assert.ErrorIs(t, err, common.ErrSubmitInFlight, "the cleared request is still outstanding")

	assert.Equal(t, ResolutionDiscarded, c.Resolve(sub.Seq, fraudResult(), nil))
	assert.Nil(t, c.Result())
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.InFlight())

	withAmount(t, c, "10")
	next, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, ResolutionSucceeded, c.Resolve(next.Seq, legitResult(), nil))
	assert.Equal(t, legitResult(), c.Result())
}

func TestEdit_ReturnsToIdleAndDismissesError(t *testing.T) {
	c := New()
	withAmount(t, c, "50")
	sub, err := c.Submit()
	require.NoError(t, err)
	c.Resolve(sub.Seq, nil, errors.New("down"))
	require.Equal(t, StateFailed, c.State())

	require.NoError(t, c.SetField(model.FieldTime, "3"))

	assert.Equal(t, StateIdle, c.State())
	assert.NoError(t, c.Err())
}

func TestEdit_SuccessKeepsResultVisible(t *testing.T) {
	c := New()
	withAmount(t, c, "50")
	sub, err := c.Submit()
	require.NoError(t, err)
	c.Resolve(sub.Seq, legitResult(), nil)

	require.NoError(t, c.SetField(model.FieldDevice, "ATM"))

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, legitResult(), c.Result())
}

func TestEdit_FailedEditLeavesFormUnchanged(t *testing.T) {
	c := New()

	err := c.SetField(model.FieldTime, "30")

	assert.ErrorIs(t, err, common.ErrInvalidField)
	assert.Equal(t, model.DefaultTransactionInput(), c.Input())
}

func TestResult_ReturnsCopy(t *testing.T) {
	c := New()
	withAmount(t, c, "50")
	sub, err := c.Submit()
	require.NoError(t, err)
	c.Resolve(sub.Seq, fraudResult(), nil)

	r := c.Result()
	r.Reasons[0] = "tampered"
	r.RiskScore = 0

	assert.Equal(t, fraudResult(), c.Result())
}

func TestResult_SurvivesLaterValidationFailure(t *testing.T) {
	c := New()
	p := &stubPredictor{result: fraudResult()}
	sub, err := c.ApplyPreset(preset.Suspicious)
	require.NoError(t, err)
	require.Equal(t, ResolutionSucceeded, c.Execute(context.Background(), p, sub))

	// Editing and failing validation afterwards still keep the verdict.
	withAmount(t, c, "")
	_, err = c.Submit()
	require.Error(t, err)
	require.NoError(t, c.SetField(model.FieldAmount, "1"))

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, fraudResult(), c.Result())
	assert.NoError(t, c.Err())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Submitting", StateSubmitting.String())
	assert.Equal(t, "Success", StateSuccess.String())
	assert.Equal(t, "Failed", StateFailed.String())
	assert.Equal(t, "State(9)", State(9).String())
}
