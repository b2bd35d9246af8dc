package auth

import (
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	passwords := []string{
		"Sup3rSecret!",
		"correct horse battery staple",
		"pässwörd-ümlaut",
		"12345678",
	}

	for _, p := range passwords {
		hash, err := Hash(p)
		if err != nil {
			t.Fatalf("Hash(%q): %v", p, err)
		}
		if hash == p {
			t.Fatalf("hash equals plaintext for %q", p)
		}
		if !strings.HasPrefix(hash, "$2a$12$") {
			t.Errorf("expected cost-12 bcrypt hash, got %q", hash)
		}
		if !Verify(hash, p) {
			t.Errorf("Verify failed for correct password %q", p)
		}
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hash, err := Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	for _, wrong := range []string{"sup3rsecret!", "Sup3rSecret", "", "Sup3rSecret! "} {
		if Verify(hash, wrong) {
			t.Errorf("Verify accepted wrong password %q", wrong)
		}
	}
}

func TestHashIsSaltedPerCall(t *testing.T) {
	h1, err := Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt missing")
	}
}

func TestVerifyDoesNotAcceptDoubleHash(t *testing.T) {
	// Hashing an already-hashed value must not produce something the
	// original password verifies against.
	h1, _ := Hash("Sup3rSecret!")
	h2, _ := Hash(h1)
	if Verify(h2, "Sup3rSecret!") {
		t.Error("double-hashed secret still verifies against the plaintext")
	}
	if !Verify(h2, h1) {
		t.Error("double hash does not verify against its own input")
	}
}

func TestVerifyDummyAlwaysFalse(t *testing.T) {
	if VerifyDummy("anything") {
		t.Error("VerifyDummy returned true")
	}
	if VerifyDummy("") {
		t.Error("VerifyDummy returned true for empty password")
	}
}
