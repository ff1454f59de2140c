// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("hash = %q, want argon2id prefix", hash)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct", "s3cret-pass", true},
		{"wrong", "s3cret-pasS", false},
		{"empty", "", false},
		{"prefix", "s3cret", false},
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

func TestCheckPIN(t *testing.T) {
	hash, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN error: %v", err)
	}

	if ok, _ := CheckPIN("1234", hash); !ok {
		t.Error("correct PIN was rejected")
	}
	if ok, _ := CheckPIN("5678", hash); ok {
		t.Error("wrong PIN was accepted")
	}
}

func TestVerifySecret_ForeignParameters(t *testing.T) {
	// Hash of "changeme" made with m=65536,t=1,p=4.
	dbHash := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	ok, err := VerifySecret("changeme", dbHash)
	if err != nil {
		t.Fatalf("VerifySecret error: %v", err)
	}
	if !ok {
		t.Error("hash with foreign parameters rejected its password")
	}
	if !NeedsRehash(dbHash) {
		t.Error("NeedsRehash = false, want true for foreign parameters")
	}
}

func TestVerifySecret_InvalidHash(t *testing.T) {
	tests := []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$bad$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!$aGFzaA",
	}

	for _, encoded := range tests {
		if _, err := VerifySecret("x", encoded); err == nil {
			t.Errorf("VerifySecret(%q) expected error", encoded)
		}
	}
}

func TestNeedsRehash_CurrentParameters(t *testing.T) {
	hash, err := HashSecret("x")
	if err != nil {
		t.Fatalf("HashSecret error: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("NeedsRehash = true for a fresh hash")
	}
}
