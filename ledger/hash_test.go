package ledger

import "testing"

func TestHashContentDeterministic(t *testing.T) {
	a := HashContent("What is 2+2?")
	b := HashContent("What is 2+2?")
	if a != b {
		t.Errorf("same input produced different digests: %s vs %s", a, b)
	}
}

func TestHashContentDistinct(t *testing.T) {
	if HashContent("4") == HashContent("5") {
		t.Error("distinct content produced identical digests")
	}
}

func TestHashContentKnownValue(t *testing.T) {
	// sha256("") is fixed by the algorithm and catches any encoding drift.
	got := HashContent("")
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Errorf("HashContent(\"\") = %s, want %s", got, want)
	}
}

func TestHashContentWidth(t *testing.T) {
	if len(HashContent("anything")) != 64 {
		t.Error("digest is not 64 hex characters")
	}
	if len(ZeroDigest) != 64 {
		t.Error("ZeroDigest is not 64 characters")
	}
}

func TestClientHashMatchesPackageHash(t *testing.T) {
	c, err := New("http://localhost:8000", "key")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.HashContent("payload") != HashContent("payload") {
		t.Error("client method and package function disagree")
	}
}
