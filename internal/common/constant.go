// Package common contains shared constants and sentinel errors used across
// CloudVault components.
package common

// SessionCookieName is the cookie that carries the signed session token
// issued by the auth gate.
const SessionCookieName = "session_token"

// RootFolderID is the reserved id of the implicit default folder. It never
// exists as a row in the metadata store.
const RootFolderID = "root"

// NonceSize is the AES-GCM nonce length in bytes.
const NonceSize = 12
