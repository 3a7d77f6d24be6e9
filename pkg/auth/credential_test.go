// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromRequestExtractsVerbatim(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://proxy/v0/machines/list", nil)
	req.Header.Set(HeaderAuthorization, "Bearer abc")

	cred, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest: %v", err)
	}

	out := make(http.Header)
	if err := cred.Attach(out); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if got := out.Get(HeaderAuthorization); got != "Bearer abc" {
		t.Fatalf("authorization mismatch: got %q, want %q", got, "Bearer abc")
	}
}

func TestFromRequestMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://proxy/v0/machines/list", nil)

	_, err := FromRequest(req)
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestAttachRejectsInvalidHeaderBytes(t *testing.T) {
	cred := Credential{value: "Bearer \x00abc"}

	out := make(http.Header)
	if err := cred.Attach(out); err == nil {
		t.Fatal("expected error for invalid header bytes")
	}
	if got := out.Get(HeaderAuthorization); got != "" {
		t.Fatalf("header should not be set on failure, got %q", got)
	}
}
