// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Errorf("unexpected hash prefix: %s", hash)
	}

	other, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == other {
		t.Error("two hashes of the same password should use different salts")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct", "admin123", true},
		{"wrong", "admin124", false},
		{"empty", "", false},
		{"case differs", "ADMIN123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckPassword(tt.password, hash)
			if err != nil {
				t.Fatalf("CheckPassword error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestCheckPassword_Bcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	ok, err := CheckPassword("admin123", string(legacy))
	if err != nil || !ok {
		t.Errorf("bcrypt hash should verify, got ok=%v err=%v", ok, err)
	}

	ok, err = CheckPassword("nope", string(legacy))
	if err != nil || ok {
		t.Errorf("wrong password should not verify, got ok=%v err=%v", ok, err)
	}

	if !NeedsRehash(string(legacy)) {
		t.Error("bcrypt hash should need rehash")
	}
}

func TestCheckPassword_BadHash(t *testing.T) {
	tests := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	}
	for _, hash := range tests {
		ok, err := CheckPassword("admin123", hash)
		if err == nil {
			t.Errorf("CheckPassword(%q) expected error", hash)
		}
		if ok {
			t.Errorf("CheckPassword(%q) should not verify", hash)
		}
	}

	if _, err := CheckPassword("x", "plaintext"); !errors.Is(err, ErrUnsupportedHash) {
		t.Errorf("expected ErrUnsupportedHash, got %v", err)
	}
}

func TestNeedsRehash(t *testing.T) {
	current, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if NeedsRehash(current) {
		t.Error("fresh hash should not need rehash")
	}

	weaker := strings.Replace(current, "m=19456,t=2", "m=4096,t=1", 1)
	if !NeedsRehash(weaker) {
		t.Error("hash with old parameters should need rehash")
	}
	if !NeedsRehash("garbage") {
		t.Error("unparseable hash should need rehash")
	}
}
