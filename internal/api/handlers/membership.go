package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ppob-wallet/internal/api/httpx"
	"github.com/baharkarakas/ppob-wallet/internal/api/validate"
	"github.com/baharkarakas/ppob-wallet/internal/apperr"
	"github.com/baharkarakas/ppob-wallet/internal/services"
)

const (
	profileImageField = "profile_image"
	// multipart framing on top of the file itself
	multipartOverhead = 64 << 10
)

var errMissingFile = apperr.Validation("Field file tidak boleh kosong")

type MembershipHandler struct {
	base
	users    *services.UserService
	maxImage int64
}

func NewMembershipHandler(users *services.UserService, maxImage int64, log *slog.Logger) *MembershipHandler {
	return &MembershipHandler{base: base{log: log}, users: users, maxImage: maxImage}
}

func (h *MembershipHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req validate.RegisterRequest
	if err := validate.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.users.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Registrasi berhasil silahkan login", nil)
}

func (h *MembershipHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req validate.LoginRequest
	if err := validate.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	tok, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Login Sukses", map[string]string{"token": tok})
}

func (h *MembershipHandler) Profile(w http.ResponseWriter, r *http.Request) {
	c, ok := h.claims(w, r)
	if !ok {
		return
	}
	p, err := h.users.Profile(r.Context(), c.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Sukses", p)
}

func (h *MembershipHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	c, ok := h.claims(w, r)
	if !ok {
		return
	}
	var req validate.UpdateProfileRequest
	if err := validate.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.users.UpdateProfile(r.Context(), c.Email, req.FirstName, req.LastName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Update profile berhasil", p)
}

func (h *MembershipHandler) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	c, ok := h.claims(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxImage+multipartOverhead)
	file, hdr, err := r.FormFile(profileImageField)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			h.fail(w, r, services.ErrImageTooLarge)
		default:
			h.fail(w, r, errMissingFile)
		}
		return
	}
	defer file.Close()

	p, err := h.users.UpdateProfileImage(r.Context(), c.Email, services.ImageUpload{
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        file,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w, "Update Profile Image berhasil", p)
}
