package token

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// SignerSettings selects how session credentials are signed
type SignerSettings struct {
	// Algorithm is HS256 (default), RS256 or ES256
	Algorithm string
	// Secret is the HMAC secret used with HS256
	Secret string
	// PrivateKeyFile is a PEM private key used with RS256 and ES256. When it is
	// empty an ephemeral key is generated, credentials then die with the process
	// just like the session store.
	PrivateKeyFile string
	KeyID          string
}

// NewSigner creates the signer described by settings
func NewSigner(settings SignerSettings) (Signer, error) {
	alg := strings.ToUpper(strings.TrimSpace(settings.Algorithm))
	switch alg {
	case "", "HS256":
		signer, err := NewHMACSigner(settings.Secret)
		if err != nil {
			return nil, err
		}
		return signer, nil

	case RS256, ES256:
		keyPair, err := loadOrGenerateKeyPair(alg, settings)
		if err != nil {
			return nil, err
		}
		if keyPair.Algorithm != alg {
			return nil, errors.Errorf("key in %s is for %s, not %s", settings.PrivateKeyFile, keyPair.Algorithm, alg)
		}
		return NewKeyPairSigner(keyPair), nil

	default:
		return nil, errors.Errorf("unsupported signing algorithm: %s", settings.Algorithm)
	}
}

func loadOrGenerateKeyPair(alg string, settings SignerSettings) (*KeyPair, error) {
	if settings.PrivateKeyFile == "" {
		if alg == ES256 {
			return GenerateECDSAKeyPair(settings.KeyID)
		}
		return GenerateRSAKeyPair(settings.KeyID, 2048)
	}

	pemData, err := os.ReadFile(settings.PrivateKeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read private key file")
	}
	keyPair, err := LoadKeyPairFromPEM(settings.KeyID, string(pemData))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load key pair from %s", settings.PrivateKeyFile)
	}
	return keyPair, nil
}
