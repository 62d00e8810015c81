package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicMessageValidationExposesMessage(t *testing.T) {
	err := fmt.Errorf("print: %w", New(CodeValidation, "No labels to print"))
	status, msg := PublicMessage(err, "Failed to generate barcode PDF")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No labels to print", msg)
}

func TestPublicMessageDependencyHidesCause(t *testing.T) {
	err := Wrap(CodeDependency, errors.New("googleapi: 403 forbidden"), "sheets batch update")
	status, msg := PublicMessage(err, "Failed to export orders")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to export orders", msg)
	assert.ErrorContains(t, err, "403 forbidden")
}

func TestPublicMessageUntypedError(t *testing.T) {
	status, msg := PublicMessage(errors.New("boom"), "Failed")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed", msg)
}

func TestUnknownCodeFallsBackToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("nope")).HTTPStatus)
}
