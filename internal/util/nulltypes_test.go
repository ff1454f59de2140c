// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestNullInt64FromValue(t *testing.T) {
	tests := []struct {
		in        int64
		wantValid bool
	}{
		{0, false},
		{1, true},
		{42, true},
	}

	for _, tt := range tests {
		got := NullInt64FromValue(tt.in)
		if got.Valid != tt.wantValid {
			t.Errorf("NullInt64FromValue(%d).Valid = %v, want %v", tt.in, got.Valid, tt.wantValid)
		}
		if tt.wantValid && got.Int64 != tt.in {
			t.Errorf("NullInt64FromValue(%d).Int64 = %d", tt.in, got.Int64)
		}
	}
}

func TestNullStringFromValue(t *testing.T) {
	if got := NullStringFromValue(""); got.Valid {
		t.Error("empty string should be invalid")
	}
	got := NullStringFromValue("intro reel")
	if !got.Valid || got.String != "intro reel" {
		t.Errorf("NullStringFromValue = %+v", got)
	}
}
