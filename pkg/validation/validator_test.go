package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name string `json:"full_name" validate:"required"`
	DOB  string `json:"date_of_birth" validate:"required,isodate"`
}

type rawDateRequest struct {
	Day string `form:"day" validate:"datetime=2006-01-02"`
}

func TestToDetails(t *testing.T) {
	v := New()

	t.Run("field messages use json names", func(t *testing.T) {
		err := v.Struct(sampleRequest{DOB: "31/12/2000"})
		details := ToDetails(err)
		assert.Equal(t, map[string]string{
			"full_name":     "is required",
			"date_of_birth": "must be a date in YYYY-MM-DD format",
		}, details)
	})

	t.Run("unaliased tags fall back to a generic message", func(t *testing.T) {
		details := ToDetails(v.Struct(rawDateRequest{Day: "tomorrow"}))
		assert.Equal(t, "validation failed for 'datetime' with parameter '2006-01-02'", details["day"])
	})

	t.Run("valid date passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(sampleRequest{Name: "Jane", DOB: "2004-02-29"}))
	})

	t.Run("impossible date fails", func(t *testing.T) {
		assert.Error(t, v.Struct(sampleRequest{Name: "Jane", DOB: "2003-02-29"}))
	})

	t.Run("syntax errors", func(t *testing.T) {
		var out map[string]any
		err := json.Unmarshal([]byte("{"), &out)
		assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("eof")))
		assert.Nil(t, ToDetails(nil))
	})
}
