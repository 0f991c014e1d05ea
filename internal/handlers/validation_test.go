package handlers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRegisteredValidators(t *testing.T) {
	RegisterValidators()

	type amountReq struct {
		Amount decimal.Decimal `binding:"gt=0"`
		Number string          `binding:"required,account_number"`
	}

	testCases := []struct {
		name  string
		req   amountReq
		valid bool
	}{
		{name: "ok", req: amountReq{Amount: decimal.RequireFromString("0.01"), Number: "1010"}, valid: true},
		{name: "dashed number", req: amountReq{Amount: decimal.NewFromInt(5), Number: "1010-A"}, valid: true},
		{name: "zero amount", req: amountReq{Amount: decimal.Zero, Number: "1010"}},
		{name: "negative amount", req: amountReq{Amount: decimal.NewFromInt(-3), Number: "1010"}},
		{name: "number too long", req: amountReq{Amount: decimal.NewFromInt(1), Number: "12345678901"}},
		{name: "number with space", req: amountReq{Amount: decimal.NewFromInt(1), Number: "10 10"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
