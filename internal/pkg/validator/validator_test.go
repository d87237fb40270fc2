package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type patchPayload struct {
	Email   string `validate:"omitempty,email"`
	Mobile  string `validate:"omitempty,max=20"`
	Address string `validate:"omitempty,max=10"`
}

func TestValidate_ReturnsAllViolations(t *testing.T) {
	errs := Validate(patchPayload{
		Email:   "not-an-email",
		Address: "a very long address line",
	})

	assert.Len(t, errs, 2)
	assert.Equal(t, "email", errs["Email"])
	assert.Equal(t, "max", errs["Address"])
}

func TestFirst_ReportsViolationsInFieldOrder(t *testing.T) {
	payload := patchPayload{
		Email:   "not-an-email",
		Address: "a very long address line",
	}

	// both fields are invalid; the message always names the first
	// struct field, run after run
	for i := 0; i < 20; i++ {
		assert.Equal(t, "Email: email", First(payload))
	}
}

func TestFirst_EmptyWhenValid(t *testing.T) {
	assert.Equal(t, "", First(patchPayload{Email: "ok@example.com"}))
}
