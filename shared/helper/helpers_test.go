package helper_test

import (
	"errors"
	"io"
	"testing"

	"github.com/on-the-ground/memoize_ive_go/shared/helper"
	"github.com/stretchr/testify/assert"
)

func TestArgAs(t *testing.T) {
	assert.Equal(t, 3, helper.ArgAs[int](3))
	assert.Equal(t, "", helper.ArgAs[string](nil))
	assert.Nil(t, helper.ArgAs[error](nil))
	assert.Equal(t, io.EOF, helper.ArgAs[error](io.EOF))

	assert.Panics(t, func() {
		helper.ArgAs[int]("three")
	})
}

func TestGetTypedValueOf(t *testing.T) {
	v, err := helper.GetTypedValueOf[int](func() (any, error) { return 7, nil })
	assert.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = helper.GetTypedValueOf[int](func() (any, error) { return nil, nil })
	assert.ErrorIs(t, err, helper.ErrNotFound)

	boom := errors.New("boom")
	_, err = helper.GetTypedValueOf[int](func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	_, err = helper.GetTypedValueOf[int](func() (any, error) { return "seven", nil })
	assert.Error(t, err)
}
