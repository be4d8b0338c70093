package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(FacultyInput{
		Name: "A", Initials: "A", Designation: "P", Phone: "1", Email: "a@b.co",
	}))

	err := ValidateStruct(FacultyInput{Name: "A", Designation: "P"})
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "Initials", fieldErr.Field)
	assert.True(t, fieldErr.Missing())
	assert.Equal(t, "missing required field: Initials", fieldErr.Error())

	err = ValidateStruct(FacultyInput{
		Name: "A", Initials: "ABCDEFGHIJKLMNOPQRSTUVWXYZ", Designation: "P", Phone: "1", Email: "a@b.co",
	})
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "max", fieldErr.Tag)
	assert.False(t, fieldErr.Missing())
}
