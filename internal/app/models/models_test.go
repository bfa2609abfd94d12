package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeBalance(t *testing.T) {
	tests := []struct {
		name      string
		agreed    float64
		paid      float64
		balance   float64
		fullyPaid bool
	}{
		{name: "outstanding", agreed: 50000, paid: 20000, balance: 30000, fullyPaid: false},
		{name: "settled exactly", agreed: 10000, paid: 10000, balance: 0, fullyPaid: true},
		{name: "overpaid", agreed: 10000, paid: 15000, balance: -5000, fullyPaid: true},
		{name: "nothing agreed", agreed: 0, paid: 0, balance: 0, fullyPaid: true},
		{name: "float noise", agreed: 0.3, paid: 0.1 + 0.2, balance: 0, fullyPaid: true},
		{name: "sub-cent amounts", agreed: 10.006, paid: 10.004, balance: 0.01, fullyPaid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Student{AmountAgreed: tt.agreed, FirstPayment: tt.paid, Balance: 123, FullyPaid: !tt.fullyPaid}
			s.RecomputeBalance()
			assert.Equal(t, tt.balance, s.Balance)
			assert.Equal(t, tt.fullyPaid, s.FullyPaid)
		})
	}
}

func TestRecomputeBalance_FullyPaidMatchesBalance(t *testing.T) {
	for agreed := 0.0; agreed <= 1000; agreed += 125 {
		for paid := 0.0; paid <= 1000; paid += 75 {
			s := &Student{AmountAgreed: agreed, FirstPayment: paid}
			s.RecomputeBalance()
			assert.Equal(t, agreed-paid <= 0, s.FullyPaid, "agreed=%v paid=%v", agreed, paid)

			before := *s
			s.RecomputeBalance()
			assert.Equal(t, before, *s)
		}
	}
}

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{in: `50000`, want: 50000},
		{in: `"20000"`, want: 20000},
		{in: `" 1,500.50 "`, want: 1500.5},
		{in: `-200`, want: -200},
		{in: `null`, want: 0},
		{in: `""`, want: 0},
		{in: `"abc"`, want: 0},
		{in: `true`, want: 0},
	}

	for _, tt := range tests {
		var payload struct {
			Amount Amount `json:"amount"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"amount":`+tt.in+`}`), &payload), tt.in)
		assert.Equal(t, tt.want, payload.Amount, tt.in)
	}
}

func TestAmountPointerAbsentVersusPresent(t *testing.T) {
	var payload struct {
		Amount *Amount `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.Nil(t, payload.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"750"}`), &payload))
	require.NotNil(t, payload.Amount)
	assert.Equal(t, 750.0, payload.Amount.Float64())
}

func TestEnums(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Valid())
	assert.False(t, Role("owner").Valid())
	assert.True(t, PaymentType("").Valid())
	assert.False(t, PaymentType("monthly").Valid())
	assert.True(t, CourseUpcoming.Valid())
	assert.False(t, CourseStatus("active").Valid())
}

func TestStudentJSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(Student{FullName: "Ada"})
	require.NoError(t, err)

	for _, key := range []string{"fullName", "nokPhoneNumber", "amountAgreed", "firstPayment", "balance", "fullyPaid"} {
		assert.Contains(t, string(raw), `"`+key+`"`)
	}
}

func TestUserJSONOmitsPassword(t *testing.T) {
	raw, err := json.Marshal(User{Email: "a@b.c", PasswordHash: "$2a$10$secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")
}
