// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql/driver"
	"encoding/json"
)

// List is an ordered list stored in a TEXT column as a JSON array.
// A NULL, empty or malformed column value decodes to an empty list, and an
// empty list always encodes as "[]" rather than null.
type List[T any] []T

// Value implements driver.Valuer.
func (l List[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *List[T]) Scan(src any) error {
	*l = DecodeList[T](columnText(src))
	return nil
}

// MarshalJSON encodes a nil list as an empty array.
func (l List[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}

// DecodeList parses a JSON array, returning an empty list on any failure.
func DecodeList[T any](s string) List[T] {
	if s == "" {
		return List[T]{}
	}
	var items []T
	if err := json.Unmarshal([]byte(s), &items); err != nil || items == nil {
		return List[T]{}
	}
	return items
}

// columnText converts a raw column value to a string.
func columnText(src any) string {
	switch v := src.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}
