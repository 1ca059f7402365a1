// Package validate decodes request bodies into tagged structs and checks them
// with go-playground/validator. The first failing field decides the message.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/baharkarakas/ppob-wallet/internal/apperr"
)

const maxBodyBytes = 1 << 20

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return v
}

// Normalizer is implemented by requests that trim or fold their fields before
// validation.
type Normalizer interface{ Normalize() }

// Messenger overrides the default message for a field and tag.
type Messenger interface {
	Message(field, tag string) (string, bool)
}

// BodyErrorMessenger overrides the message used when the body is not valid
// JSON for the target type.
type BodyErrorMessenger interface {
	BodyErrorMessage() string
}

// DecodeJSON reads r's body into dst and validates it.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if bm, ok := dst.(BodyErrorMessenger); ok && !errors.Is(err, io.EOF) {
			return apperr.Validation(bm.BodyErrorMessage())
		}
		return apperr.Validation("Request body tidak valid")
	}
	return Struct(dst)
}

// Struct normalizes and validates s, which must be a pointer to a struct.
func Struct(s any) error {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	fe := verrs[0]
	if m, ok := s.(Messenger); ok {
		if msg, ok := m.Message(fe.Field(), fe.Tag()); ok {
			return apperr.Validation(msg)
		}
	}
	return apperr.Validation(defaultMessage(fe))
}

func defaultMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return "Parameter " + f + " harus diisi"
	case "email":
		return "Parameter " + f + " tidak sesuai format"
	case "min":
		return f + " minimal " + fe.Param() + " karakter"
	case "max":
		return "Parameter " + f + " maksimal " + fe.Param() + " karakter"
	}
	return "Parameter " + f + " tidak valid"
}

// QueryInt reads an optional integer query parameter.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("Parameter " + name + " harus berupa angka")
	}
	return n, nil
}
