package binary

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier checks downloaded binaries against the integrity settings
// from the configuration. With nothing configured it verifies nothing;
// configured checks that fail abort the install before anything reaches
// the final path.
type Verifier struct {
	// Checksum is the pinned hex SHA256 digest, empty to skip.
	Checksum string
	// KeyPath is the armored public key file for signature checks.
	KeyPath string
}

// VerifyChecksum compares the SHA256 digest of body against the pinned
// checksum. A pin mismatch is fatal for the operation.
func (v *Verifier) VerifyChecksum(body []byte) error {
	if v.Checksum == "" {
		return nil
	}

	sum := sha256.Sum256(body)
	got := hex.EncodeToString(sum[:])
	want := strings.ToLower(v.Checksum)

	if got != want {
		return fmt.Errorf("checksum mismatch: downloaded binary has sha256 %s, config pins %s", got, want)
	}

	return nil
}

// VerifySignature checks a detached PGP signature over body using the
// configured armored public key. The signature may be armored or raw;
// armored is tried first.
func (v *Verifier) VerifySignature(body, signature []byte) error {
	if v.KeyPath == "" {
		return nil
	}

	keyData, err := os.ReadFile(v.KeyPath)
	if err != nil {
		return fmt.Errorf("read signing key: %w", err)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(keyData))
	if err != nil {
		return fmt.Errorf("parse signing key %s: %w", v.KeyPath, err)
	}

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(body), bytes.NewReader(signature), nil)
	if err == nil {
		return nil
	}

	_, rawErr := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(body), bytes.NewReader(signature), nil)
	if rawErr != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}
