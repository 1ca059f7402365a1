package validate

import (
	"strings"

	"github.com/baharkarakas/ppob-wallet/internal/money"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=100"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Password  string `json:"password" validate:"required,min=8,max=100"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

const topUpAmountMessage = "Parameter top_up_amount hanya boleh angka dan tidak boleh lebih kecil dari 0"

type TopUpRequest struct {
	TopUpAmount *money.Money `json:"top_up_amount" validate:"required"`
}

func (r *TopUpRequest) Message(field, tag string) (string, bool) {
	if field == "top_up_amount" && tag == "required" {
		return "Parameter top_up_amount harus di isi", true
	}
	return "", false
}

func (r *TopUpRequest) BodyErrorMessage() string { return topUpAmountMessage }

type PaymentRequest struct {
	ServiceCode string `json:"service_code" validate:"required,max=100"`
}

func (r *PaymentRequest) Normalize() { r.ServiceCode = strings.TrimSpace(r.ServiceCode) }

func (r *PaymentRequest) Message(field, tag string) (string, bool) {
	if field == "service_code" && tag == "required" {
		return "Parameter service_code harus di isi", true
	}
	return "", false
}
