// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package proxy provides the HTTP surface that fronts the Fly Machines
// API. It translates the small local REST surface into upstream Machines
// API requests, forwards the caller's authorization credential verbatim,
// and relays the upstream JSON response back unchanged.
package proxy
