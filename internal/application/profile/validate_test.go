package profile

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

func assertValidationError(t *testing.T, err error) *domerrors.ValidationError {
	t.Helper()
	var ve *domerrors.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve
}

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"maria_ds", "abc", "john.doe-99"} {
		assert.NoError(t, ValidateUsername(ok), ok)
	}
	for _, bad := range []string{"", "ab", "Maria", "has space", "emoji😀", "a234567890123456789012345678901234"} {
		assertValidationError(t, ValidateUsername(bad))
	}
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "maria_ds", NormalizeUsername("  Maria_DS "))
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, Validate(testProfile()))

	p := testProfile()
	p.Contact.Email = "not-an-email"
	ve := assertValidationError(t, Validate(p))
	assert.Equal(t, "email", ve.Field)

	p = testProfile()
	p.Status = "admin"
	ve = assertValidationError(t, Validate(p))
	assert.Equal(t, "status", ve.Field)

	p = testProfile()
	p.Resume = strPtr("")
	assert.NoError(t, Validate(p))
}

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	assert.NotPanics(t, func() { newValidator() })
	assert.Panics(t, func() {
		mustRegister(validator.New(), "", func(validator.FieldLevel) bool { return true })
	})
}
