package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store(cause, "не удалось обновить заявку")

	assert.True(t, IsStore(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(err))
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("service: %w", ErrWithdrawalIDRequired)

	assert.True(t, IsValidation(err))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, "требуется идентификатор заявки", PublicMessage(err))
}

func TestHTTPStatus_PlainError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "внутренняя ошибка сервера", PublicMessage(err))
	assert.False(t, IsNotFound(err))
}
