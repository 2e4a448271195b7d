// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package sheets

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/oauth2"
)

func TestRangeRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		a1    string
		want  string
	}{
		{name: "plain title", title: "Лист1", a1: "A:A", want: "'Лист1'!A:A"},
		{name: "title with spaces", title: "Иванов Петр Сергеевич", a1: "C2", want: "'Иванов Петр Сергеевич'!C2"},
		{name: "title with apostrophe", title: "O'Brien", a1: "1:1", want: "'O''Brien'!1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := rangeRef(tt.title, tt.a1); got != tt.want {
				t.Fatalf("rangeRef(%q, %q) = %q, want %q", tt.title, tt.a1, got, tt.want)
			}
		})
	}
}

func TestMatrixConversion(t *testing.T) {
	t.Parallel()

	in := [][]string{{"Показатель", "Референс"}, {"Глюкоза", ""}}

	if got := stringMatrix(interfaceMatrix(in)); !reflect.DeepEqual(got, in) {
		t.Fatalf("matrix round trip returned %v", got)
	}
}

func TestStringMatrixNonStringCells(t *testing.T) {
	t.Parallel()

	got := stringMatrix([][]interface{}{{"Глюкоза", 5.4}})

	if got[0][1] != "5.4" {
		t.Fatalf("numeric cell rendered as %q", got[0][1])
	}
}

func TestOAuthConfig(t *testing.T) {
	t.Parallel()

	cfg := OAuthConfig("client-id", "client-secret")

	if cfg.RedirectURL != oobRedirectURL {
		t.Fatalf("redirect URL %q", cfg.RedirectURL)
	}

	if len(cfg.Scopes) != 1 || cfg.Scopes[0] != "https://www.googleapis.com/auth/spreadsheets" {
		t.Fatalf("scopes %q", cfg.Scopes)
	}
}

func TestLoadTokenMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadToken(filepath.Join(t.TempDir(), "token.json"))
	if !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token.json")

	saved := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}
	if err := SaveToken(path, saved); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	loaded, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken failed: %v", err)
	}

	if loaded.AccessToken != "access" || loaded.RefreshToken != "refresh" {
		t.Fatalf("token round trip returned %+v", loaded)
	}
}
