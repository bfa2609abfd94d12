package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// PaymentType describes how a student pays the agreed fee
type PaymentType string

const (
	PaymentFull        PaymentType = "full"
	PaymentInstallment PaymentType = "installment"
)

// Valid reports whether p is empty or a known payment type
func (p PaymentType) Valid() bool {
	switch p {
	case "", PaymentFull, PaymentInstallment:
		return true
	}
	return false
}

// Student defines a registered student based on the 'students' table.
// Balance and FullyPaid are derived from AmountAgreed and FirstPayment.
type Student struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	FullName       string      `json:"fullName" db:"full_name" example:"Ada Obi"`
	Email          string      `json:"email" db:"email" example:"ada@example.com"`
	PhoneNumber    string      `json:"phoneNumber" db:"phone_number"`
	Address        string      `json:"address" db:"address"`
	NokPhoneNumber string      `json:"nokPhoneNumber" db:"nok_phone_number"` // Next of kin
	Gender         string      `json:"gender" db:"gender"`
	Course         string      `json:"course" db:"course" example:"Web Development"`
	PaymentType    PaymentType `json:"paymentType" db:"payment_type" example:"installment"`
	AmountAgreed   float64     `json:"amountAgreed" db:"amount_agreed" example:"50000"`
	FirstPayment   float64     `json:"firstPayment" db:"first_payment" example:"20000"` // Amount paid to date
	Balance        float64     `json:"balance" db:"balance" example:"30000"`
	FullyPaid      bool        `json:"fullyPaid" db:"fully_paid" example:"false"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time   `json:"updatedAt" db:"updated_at"`
}

// MaxAmount is the first value that no longer fits the NUMERIC(14,2) money columns
const MaxAmount = 1e12

// RecomputeBalance rounds the amounts to what the money columns store and
// derives Balance and FullyPaid from them.
func (s *Student) RecomputeBalance() {
	s.AmountAgreed = RoundMoney(s.AmountAgreed)
	s.FirstPayment = RoundMoney(s.FirstPayment)
	s.Balance = RoundMoney(s.AmountAgreed - s.FirstPayment)
	s.FullyPaid = s.Balance <= 0
}

// RoundMoney rounds to kobo so float noise never flips FullyPaid
func RoundMoney(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
