// Copyright (c) 2025 The OpenVote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token generation.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

CheckPassword returns ErrInvalidCredentials for a mismatch, so callers
never need to distinguish bcrypt errors from wrong passwords.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded without padding and sent by clients
in the X-Session-Token header. Each login creates a new token; tokens
expire server-side via the session table.
*/
package auth
