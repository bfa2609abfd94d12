package dto

import "github.com/web79/smiportal/internal/app/models"

// CreateStudentRequest is the payload for registering a student.
// Amounts accept JSON numbers or numeric strings.
type CreateStudentRequest struct {
	FullName       string        `json:"fullName" example:"Ada Obi"`
	Email          string        `json:"email" example:"ada@example.com"`
	PhoneNumber    string        `json:"phoneNumber"`
	Address        string        `json:"address"`
	NokPhoneNumber string        `json:"nokPhoneNumber"`
	Gender         string        `json:"gender"`
	Course         string        `json:"course" example:"Web Development"`
	PaymentType    string        `json:"paymentType" example:"installment"`
	AmountAgreed   models.Amount `json:"amountAgreed" swaggertype:"number" example:"50000"`
	FirstPayment   models.Amount `json:"firstPayment" swaggertype:"number" example:"20000"`
}

// UpdateStudentRequest is a partial update; absent fields keep their stored value
type UpdateStudentRequest struct {
	FullName       *string        `json:"fullName"`
	Email          *string        `json:"email"`
	PhoneNumber    *string        `json:"phoneNumber"`
	Address        *string        `json:"address"`
	NokPhoneNumber *string        `json:"nokPhoneNumber"`
	Gender         *string        `json:"gender"`
	Course         *string        `json:"course"`
	PaymentType    *string        `json:"paymentType"`
	AmountAgreed   *models.Amount `json:"amountAgreed" swaggertype:"number"`
	FirstPayment   *models.Amount `json:"firstPayment" swaggertype:"number"`
}

// StudentListQuery holds list filters
type StudentListQuery struct {
	Search string `form:"search"`
}
