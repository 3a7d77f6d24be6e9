// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package auth

import (
	"errors"
	"net/http"

	"golang.org/x/net/http/httpguts"
)

// HeaderAuthorization is the header carrying the caller's credential.
const HeaderAuthorization = "Authorization"

// ErrMissingCredential is returned when the inbound request carries no
// authorization header.
var ErrMissingCredential = errors.New("Authorization header required")

// Credential is the caller-supplied authorization value. It is opaque to
// the proxy: never parsed, never logged, forwarded byte-for-byte.
type Credential struct {
	value string
}

// FromRequest extracts the credential from the inbound request headers.
func FromRequest(r *http.Request) (Credential, error) {
	val := r.Header.Get(HeaderAuthorization)
	if val == "" {
		return Credential{}, ErrMissingCredential
	}
	return Credential{value: val}, nil
}

// Attach copies the credential verbatim onto the outbound headers.
// http.Header.Set does not validate values, so bytes that cannot form a
// legal header value are rejected here instead of being sent malformed.
func (c Credential) Attach(h http.Header) error {
	if !httpguts.ValidHeaderFieldValue(c.value) {
		return errors.New("authorization value contains invalid header bytes")
	}
	h.Set(HeaderAuthorization, c.value)
	return nil
}
