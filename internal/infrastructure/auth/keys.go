package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
)

// LoadRSAPrivateKeyFromPEM decodes a PEM block and returns an RSA private key.
func LoadRSAPrivateKeyFromPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		key2, err2 := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err2 != nil {
			return nil, err
		}
		var ok bool
		key, ok = key2.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("PEM is not an RSA private key")
		}
	}
	return key, nil
}

// LoadSigningKey reads the key from inline PEM, else from pemPath. With
// neither set it generates a throwaway key and reports ephemeral=true;
// tokens signed with it do not survive a restart.
func LoadSigningKey(inlinePEM, pemPath string) (key *rsa.PrivateKey, ephemeral bool, err error) {
	switch {
	case inlinePEM != "":
		key, err = LoadRSAPrivateKeyFromPEM([]byte(inlinePEM))
		return key, false, err
	case pemPath != "":
		data, err := os.ReadFile(pemPath)
		if err != nil {
			return nil, false, err
		}
		key, err = LoadRSAPrivateKeyFromPEM(data)
		return key, false, err
	}
	key, err = rsa.GenerateKey(rand.Reader, 2048)
	return key, true, err
}
