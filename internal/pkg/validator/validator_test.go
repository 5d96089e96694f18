package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Date  string `validate:"required,isodate"`
	Start string `validate:"required,clock"`
	End   string `validate:"omitempty,clock"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Date: "2026-11-02", Start: "09:30"}))

	errs := Validate(sample{Date: "02/11/2026", Start: "25:00", End: "7pm"})
	assert.Equal(t, map[string]string{"Date": "isodate", "Start": "clock", "End": "clock"}, errs)

	errs = Validate(sample{})
	assert.Equal(t, "required", errs["Date"])
	assert.Equal(t, "required", errs["Start"])
}

type tagged struct {
	BookingDate string `json:"booking_date" validate:"required,isodate"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	assert.Equal(t, map[string]string{"booking_date": "required"}, Validate(tagged{}))
}
