package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/http"
	"testing"

	"sheetpivot/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestFromDomainCodes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{core.NewInvalidHeaderError(0, "row does not exist"), CodeInvalidHeader},
		{core.NewColumnNotFoundError("Name"), CodeColumnNotFound},
		{core.ErrTableNotFound, CodeNotFound},
		{fmt.Errorf("open: %w", core.ErrUnsupportedSource), CodeInvalidInput},
		{fmt.Errorf("failed to open CSV file: %w", fs.ErrNotExist), CodeNotFound},
		{stderrors.New("boom"), CodeInternalError},
	}
	for _, tt := range tests {
		err := FromDomain(tt.err)
		assert.Equal(t, tt.code, GetCode(err), tt.err.Error())
		assert.ErrorIs(t, err, tt.err)
	}
	assert.Nil(t, FromDomain(nil))
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(core.NewColumnNotFoundError("Age"), "filter failed")
	assert.Equal(t, CodeColumnNotFound, GetCode(err))
	assert.Equal(t, `filter failed: column not found: "Age"`, err.Error())

	wrapped := Wrapf(InvalidInput("bad row"), "request %d", 7)
	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeDatabaseError, stderrors.New("conn refused"))
	assert.Equal(t, CodeDatabaseError, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.False(t, IsAppError(stderrors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeInvalidHeader))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeColumnNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeDatabaseError))
}
