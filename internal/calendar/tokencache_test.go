package calendar

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")

	if err := SaveToken(path, "ya29.secret-token", "hunter2"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	got, err := LoadToken(path, "hunter2")
	if err != nil {
		t.Fatalf("LoadToken failed: %v", err)
	}
	if got != "ya29.secret-token" {
		t.Fatalf("token: got %q", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("cache file mode: got %v, want 0600", info.Mode().Perm())
	}
}

func TestTokenCacheWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")

	if err := SaveToken(path, "ya29.secret-token", "hunter2"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if _, err := LoadToken(path, "wrong"); err == nil {
		t.Fatalf("wrong passphrase decrypted the token")
	}
}

func TestTokenCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.enc")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadToken(path, "hunter2"); err == nil {
		t.Fatalf("corrupt envelope decrypted")
	}
}
