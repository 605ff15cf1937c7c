package payments

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard() *Wizard {
	return NewWizard(uuid.New(), uuid.New(), 1000000, "RUB")
}

func TestNewWizardDefaults(t *testing.T) {
	w := newTestWizard()

	assert.Equal(t, StepMethod, w.Step)
	assert.Equal(t, MethodCard, w.Method, "card is the default method")
	assert.True(t, w.CanClose())
}

func TestChooseMethodAdvancesToDetails(t *testing.T) {
	w := newTestWizard()

	require.NoError(t, w.ChooseMethod(MethodSBP))
	assert.Equal(t, StepDetails, w.Step)
	assert.Equal(t, MethodSBP, w.Method)
}

func TestChooseMethodRejectsUnknownMethod(t *testing.T) {
	w := newTestWizard()

	assert.ErrorIs(t, w.ChooseMethod(Method("crypto")), ErrInvalidMethod)
	assert.Equal(t, StepMethod, w.Step)
}

func TestBackReturnsToMethod(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.ChooseMethod(MethodCard))

	require.NoError(t, w.Back())
	assert.Equal(t, StepMethod, w.Step)

	assert.ErrorIs(t, w.Back(), ErrWrongStep, "no back edge from method")
}

func TestSubmitDetailsCardGuard(t *testing.T) {
	incomplete := []CardDetails{
		{},
		{Number: "1234 5678 9012 345", Expiry: "12/25", CVV: "123", HolderName: "IVAN"},
		{Number: "1234 5678 9012 3456", Expiry: "12/2", CVV: "123", HolderName: "IVAN"},
		{Number: "1234 5678 9012 3456", Expiry: "12/25", CVV: "12", HolderName: "IVAN"},
		{Number: "1234 5678 9012 3456", Expiry: "12/25", CVV: "123", HolderName: ""},
	}

	for i, card := range incomplete {
		w := newTestWizard()
		require.NoError(t, w.ChooseMethod(MethodCard))

		err := w.SubmitDetails(card)
		assert.ErrorIs(t, err, ErrIncompleteCard, "case %d", i)
		assert.Equal(t, StepDetails, w.Step, "case %d: wizard must stay at details", i)
	}
}

func TestSubmitDetailsCardNormalizesRawInput(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.ChooseMethod(MethodCard))

	err := w.SubmitDetails(CardDetails{
		Number:     "1234567890123456",
		Expiry:     "1225",
		CVV:        "123",
		HolderName: "ivan petrov",
	})

	require.NoError(t, err)
	assert.Equal(t, StepProcessing, w.Step)
	assert.Equal(t, "1234 5678 9012 3456", w.Card.Number)
	assert.Equal(t, "12/25", w.Card.Expiry)
	assert.Equal(t, "IVAN PETROV", w.Card.HolderName)
}

func TestSubmitDetailsSBPPassesUnconditionally(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.ChooseMethod(MethodSBP))

	require.NoError(t, w.SubmitDetails(CardDetails{}))
	assert.Equal(t, StepProcessing, w.Step)
}

func TestCloseDisabledDuringProcessing(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.ChooseMethod(MethodSBP))
	require.NoError(t, w.SubmitDetails(CardDetails{}))

	assert.Equal(t, StepProcessing, w.Step)
	assert.False(t, w.CanClose())
}

func TestSettleMovesToSuccess(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.ChooseMethod(MethodSBP))
	require.NoError(t, w.SubmitDetails(CardDetails{}))

	require.NoError(t, w.Settle("txn-1"))
	assert.Equal(t, StepSuccess, w.Step)
	assert.Equal(t, "txn-1", w.TransactionID)
	assert.True(t, w.CanClose())

	assert.ErrorIs(t, w.Settle("txn-2"), ErrWrongStep, "settlement is single-shot")
}

func TestSettleOnlyFromProcessing(t *testing.T) {
	w := newTestWizard()
	assert.ErrorIs(t, w.Settle("txn-1"), ErrWrongStep)
}
