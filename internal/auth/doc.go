// Package auth implements the authentication subsystem: Argon2id password
// hashing, JWT issuance and validation, and the user account repository.
//
// Passwords are hashed with a per-call random salt and stored in PHC string
// format. Access tokens are HS256 JWTs carrying the user's ID, email, and
// role, valid for a configured lifetime (one hour by default).
package auth
