package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusServiceUnavailable, CodeUnavailable, "down", ErrUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.Equal(t, CodeUnavailable, err.Code)
	assert.Equal(t, "down", err.Message)
	assert.Equal(t, ErrUnavailable.Error(), err.Error())

	unavailable := ServiceUnavailable("store down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, unavailable.Status)
	assert.ErrorIs(t, unavailable, ErrUnavailable)

	cause := stderrors.New("dial tcp: connection refused")
	wrapped := ServiceUnavailable("store down", cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "store down", wrapped.Message)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, CodeInternalError, internal.Code)
	assert.Equal(t, "db down", internal.Error())

	noWrapped := &AppError{Message: "plain"}
	assert.Equal(t, "plain", noWrapped.Error())
}

func TestDeliveryError(t *testing.T) {
	cause := stderrors.New("Forbidden: bot was blocked by the user")
	err := fmt.Errorf("send text: %w", NewDeliveryError("send_text", cause))

	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.ErrorIs(t, err, cause)

	var de *DeliveryError
	assert.True(t, stderrors.As(err, &de))
	assert.Equal(t, "send_text", de.Op)
	assert.Equal(t, cause.Error(), de.Error())

	assert.Equal(t, "edit: message delivery failed", (&DeliveryError{Op: "edit"}).Error())
}
