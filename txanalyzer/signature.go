package txanalyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

// ABISignature is the detached signature a wallet attaches to a supplied
// ABI.
type ABISignature struct {
	Value     string `json:"value"`
	Algorithm string `json:"algorithm,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
	Issuer    string `json:"issuer,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func abiDigest(abiJSON []byte) []byte {
	// ECDSA-SHA256 signers hash the message they are given, and they are
	// given the SHA-256 of the ABI.
	first := sha256.Sum256(abiJSON)
	second := sha256.Sum256(first[:])
	return second[:]
}

// VerifyABISignature checks a DER encoded secp256k1 signature over the
// SHA-256 digest of abiJSON.
func VerifyABISignature(abiJSON []byte, sig ABISignature) error {
	if sig.Algorithm == "" {
		return errors.New("Missing algorithm")
	}
	if !strings.EqualFold(sig.Algorithm, "secp256k1") {
		return errors.Errorf("Unsupported algorithm: %s. Only secp256k1 is supported.", sig.Algorithm)
	}
	if sig.PublicKey == "" {
		return errors.New("Missing public_key")
	}

	sigBytes, err := hex.DecodeString(strings.TrimPrefix(sig.Value, "0x"))
	if err != nil {
		return errors.Errorf("Invalid signature hex: %s", err)
	}
	parsed, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return errors.Errorf("Invalid DER signature: %s", err)
	}
	keyBytes, err := hex.DecodeString(strings.TrimPrefix(sig.PublicKey, "0x"))
	if err != nil {
		return errors.Errorf("Invalid public key hex: %s", err)
	}
	pub, err := secp256k1.ParsePubKey(keyBytes)
	if err != nil {
		return errors.Errorf("Invalid public key: %s", err)
	}
	if !parsed.Verify(abiDigest(abiJSON), pub) {
		return errors.New("signature verification failed")
	}
	return nil
}

// SignABI produces the hex DER signature VerifyABISignature accepts.
func SignABI(abiJSON []byte, key *secp256k1.PrivateKey) string {
	return hex.EncodeToString(ecdsa.Sign(key, abiDigest(abiJSON)).Serialize())
}
