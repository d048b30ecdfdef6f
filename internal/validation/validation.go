// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validation declares the request schemas accepted by the API and
// checks them with go-playground/validator, reporting every violation with
// the JSON name of the offending field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/sitekit/internal/util"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of violations for a payload. A nil Errors means valid.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by the names clients send.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return util.IsValidSlug(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("registering slug validator: %v", err))
		}
		if err := v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == strings.TrimSpace(s)
		}); err != nil {
			panic(fmt.Sprintf("registering trimmed validator: %v", err))
		}

		validate = v
	})
	return validate
}

// Struct validates v and returns every violation, or nil when v is valid.
// Types implementing Normalizer are normalized first.
func Struct(v any) Errors {
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}

	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "", Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// Normalizer is implemented by request types that apply defaults or
// derived values before validation.
type Normalizer interface {
	Normalize()
}

// fieldPath strips the root struct name: "BlogInput.tags[2]" -> "tags[2]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when " + requiredIfCondition(fe.Param())
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "trimmed":
		return "must not start or end with whitespace"
	case "slug":
		return "must contain only lowercase letters, numbers and single hyphens"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "nefield":
		return "must differ from " + lowerFirst(fe.Param())
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func isLengthKind(k reflect.Kind) bool {
	return k == reflect.String || k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

// requiredIfCondition renders "Status scheduled" as "status is scheduled".
func requiredIfCondition(param string) string {
	fields := strings.Fields(param)
	if len(fields) != 2 {
		return param
	}
	return lowerFirst(fields[0]) + " is " + fields[1]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
