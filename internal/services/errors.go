package services

import (
	"net/http"

	"github.com/baharkarakas/ppob-wallet/internal/apperr"
)

// Domain errors. They reach the HTTP boundary unchanged and are matched with
// errors.Is.
var (
	ErrEmailTaken     = apperr.Conflict("Email sudah terdaftar")
	ErrBadCredentials = apperr.Unauthenticated("Email atau password salah")
	ErrUserNotFound   = apperr.NotFound("User tidak ditemukan")

	ErrServiceNotFound     = apperr.NotFound("Service atau Layanan tidak ditemukan")
	ErrInsufficientBalance = apperr.New(apperr.KindInsufficientBalance, http.StatusBadRequest, "Saldo tidak mencukupi")
	ErrInvalidAmount       = apperr.New(apperr.KindInvalidAmount, http.StatusBadRequest,
		"Parameter top_up_amount hanya boleh angka dan tidak boleh lebih kecil dari 0")

	ErrInvalidOffset = apperr.New(apperr.KindInvalidRange, http.StatusBadRequest, "Offset harus lebih besar atau sama dengan 0")
	ErrInvalidLimit  = apperr.New(apperr.KindInvalidRange, http.StatusBadRequest, "Limit harus lebih besar atau sama dengan 1")

	ErrImageFormat   = apperr.Validation("Format image tidak sesuai")
	ErrImageTooLarge = apperr.Validation("Ukuran file terlalu besar")
)
