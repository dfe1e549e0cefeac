package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bulkRequest struct {
	Percent *float64 `validate:"required"`
	Count   *int     `validate:"omitempty,gte=1"`
}

type seedRequest struct {
	Count int `validate:"gte=1,lte=10000"`
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestValidate_Passes(t *testing.T) {
	assert.NoError(t, Validate(&bulkRequest{Percent: floatPtr(10), Count: intPtr(5)}))
	assert.NoError(t, Validate(&bulkRequest{Percent: floatPtr(-25)}))
	assert.NoError(t, Validate(&seedRequest{Count: 1}))
	assert.NoError(t, Validate(&seedRequest{Count: 10000}))
}

func TestValidate_RequiredPointer(t *testing.T) {
	err := Validate(&bulkRequest{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "is required", valErr.Fields()["Percent"])
}

func TestValidate_RangeTags(t *testing.T) {
	err := Validate(&seedRequest{Count: 10001})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be less than or equal to 10000", valErr.Fields()["Count"])

	err = Validate(&bulkRequest{Percent: floatPtr(10), Count: intPtr(0)})
	require.Error(t, err)
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be greater than or equal to 1", valErr.Fields()["Count"])
}

func TestValidationError_MessageListsFields(t *testing.T) {
	err := Validate(&bulkRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Percent' is required")
}
