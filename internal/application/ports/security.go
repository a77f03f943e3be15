package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	// DummyVerify burns the same cost as a real verification without a
	// stored hash. Login calls it when the email is unknown so unknown
	// accounts and wrong passwords take comparable time.
	DummyVerify(password string)
}

// TokenIssuer signs and verifies bearer tokens (HS256, process-wide secret).
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
	// Verify returns the subject identity, or domain/errors.ErrInvalidToken
	// wrapped around the cause. Callers must not surface the cause.
	Verify(tokenString string) (userID, username string, err error)
}
