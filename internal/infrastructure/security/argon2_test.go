package security

import (
	"strings"
	"testing"
)

// fast params so the suite stays quick; production defaults live in
// DefaultArgon2Params.
func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestHashNeverEqualsPlaintext(t *testing.T) {
	h := testHasher()
	encoded, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if encoded == "secret1" {
		t.Fatal("encoded hash equals plaintext")
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding: %q", encoded)
	}
}

func TestVerify(t *testing.T) {
	h := testHasher()
	encoded, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !h.Verify("correct horse", encoded) {
		t.Error("correct password rejected")
	}
	if h.Verify("wrong horse", encoded) {
		t.Error("wrong password accepted")
	}
	if h.Verify("", encoded) {
		t.Error("empty password accepted")
	}
}

func TestUniqueSaltPerHash(t *testing.T) {
	h := testHasher()
	a, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical; salt is not unique")
	}
}

func TestVerifyRejectsMalformedEncoding(t *testing.T) {
	h := testHasher()
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=1024,t=1,p=1$onlyonepart",
		"$argon2id$v=1$m=1024,t=1,p=1$c2FsdA$aGFzaA", // wrong version
	} {
		if h.Verify("anything", encoded) {
			t.Errorf("malformed hash %q verified", encoded)
		}
	}
}

func TestDummyVerifyDoesNotPanic(t *testing.T) {
	h := testHasher()
	h.DummyVerify("whatever")
}
