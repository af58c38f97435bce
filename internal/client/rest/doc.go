// Package rest contains the client-side gateway to the gestoria backend.
//
// # Overview
//
// The package provides:
//  1. A Client that owns the base URL, the bearer credential, and the
//     http.Client, and routes every outbound call through one place so
//     authorization and session-expiry detection behave identically for
//     all endpoints.
//  2. Typed endpoint methods: Login, Me, Upload, Retry, Historico,
//     Facturas and ManualFactura, mirroring the backend REST surface.
//
// # Session expiry
//
// Any 401 response, no matter which call produced it, triggers the hook
// installed with SetSessionExpiredHook before the response is handed back
// to the caller. The hook is expected to clear the credential and drop the
// UI to the unauthenticated view; the Client itself never retries.
//
// # Error Handling
//
// Non-2xx responses are mapped to sentinel errors that callers can match
// with errors.Is: ErrUnauthorized, ErrUnavailable. The backend's error
// detail is preserved in the wrapped message because per-file upload
// failures surface it to the operator verbatim.
//
// Network-level failures are returned as-is: the gateway does not
// distinguish them from application errors beyond not mapping them.
package rest
