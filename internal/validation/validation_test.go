package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transitionBody struct {
	Status string `json:"status" validate:"required,withdrawal_status"`
}

type userStatusBody struct {
	Status string `json:"status" validate:"required,user_status"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestWithdrawalStatusTag(t *testing.T) {
	v := newValidator(t)

	for _, ok := range []string{"Pending", "processing", "COMPLETED", "Rejected", "processed", " Completed "} {
		assert.NoError(t, v.Struct(transitionBody{Status: ok}), ok)
	}

	err := v.Struct(transitionBody{Status: "Banana"})
	require.Error(t, err)
	assert.Contains(t, Message(err), "Banana")

	err = v.Struct(transitionBody{})
	assert.Equal(t, "поле status обязательно", Message(err))
}

func TestUserStatusTag(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(userStatusBody{Status: "active"}))
	assert.NoError(t, v.Struct(userStatusBody{Status: "Inactive"}))
	assert.Error(t, v.Struct(userStatusBody{Status: "banned"}))
}

func TestMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "некорректное тело запроса", Message(errors.New("unexpected EOF")))
}

func TestRegisterBindings(t *testing.T) {
	assert.NoError(t, RegisterBindings())
}

func TestValidateHelpers(t *testing.T) {
	assert.NoError(t, ValidateOperatorID("ops-1"))
	assert.Error(t, ValidateOperatorID("ops\n1"))
	assert.Error(t, ValidateOperatorID(strings.Repeat("a", MaxOperatorIDLength+1)))

	assert.NoError(t, ValidateTransactionReference("TX-123"))
	assert.Error(t, ValidateTransactionReference(strings.Repeat("x", MaxTransactionReferenceLength+1)))

	assert.NoError(t, ValidateNotes(""))
	assert.Error(t, ValidateNotes(strings.Repeat("я", MaxNotesLength+1)))

	assert.Error(t, ValidateSearch(strings.Repeat("q", MaxSearchLength+1)))
}
