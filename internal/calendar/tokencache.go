package calendar

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

const kdfIterations = 4096

type tokenEnvelope struct {
	Salt  string `json:"salt"`
	Nonce string `json:"nonce"`
	Data  string `json:"data"`
}

// SaveToken encrypts the access token with a passphrase-derived key and
// writes it to path, so a restart can reuse the session token without
// storing it in the clear.
func SaveToken(path, token, passphrase string) error {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return err
	}
	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}
	sealed := gcm.Seal(nil, nonce, []byte(token), nil)

	body, err := json.Marshal(tokenEnvelope{
		Salt:  base64.StdEncoding.EncodeToString(salt),
		Nonce: base64.StdEncoding.EncodeToString(nonce),
		Data:  base64.StdEncoding.EncodeToString(sealed),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o600)
}

// LoadToken decrypts a token previously written by SaveToken.
func LoadToken(path, passphrase string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var env tokenEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", err
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return "", err
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return "", err
	}
	sealed, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return "", err
	}
	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}
	token, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, kdfIterations, 32, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
