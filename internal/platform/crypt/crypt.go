// Package crypt encrypts small secrets at rest with AES-256-GCM
//
// The key is scrypt-derived from a random salt persisted next to the data
// files, so encrypted values survive restarts and host moves. This is
// obfuscation against casual reading of the settings file, not protection
// against an attacker who can read the data directory.
package crypt

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/scrypt"

	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/store"
)

const (
	saltDoc   = ".encryption-key"
	keyPepper = "gigaset-phonebook"
	nonceLen  = 16
	tagLen    = 16
)

// Keeper derives one process-wide key lazily and reuses it
type Keeper struct {
	docs store.Documents

	once sync.Once
	key  []byte
	err  error
}

// New returns a Keeper backed by the given document store
func New(docs store.Documents) *Keeper {
	return &Keeper{docs: docs}
}

func (k *Keeper) deriveKey() ([]byte, error) {
	k.once.Do(func() {
		ctx := context.Background()
		salt, err := k.docs.LoadRaw(ctx, saltDoc)
		if errors.Is(err, store.ErrNotFound) {
			raw := make([]byte, 32)
			if _, rerr := rand.Read(raw); rerr != nil {
				k.err = perrs.Internalf("crypt: salt generation: %v", rerr)
				return
			}
			salt = []byte(hex.EncodeToString(raw))
			if serr := k.docs.SaveRaw(ctx, saltDoc, salt); serr != nil {
				k.err = serr
				return
			}
		} else if err != nil {
			k.err = err
			return
		}
		k.key, k.err = scrypt.Key(salt, []byte(keyPepper), 16384, 8, 1, 32)
	})
	return k.key, k.err
}

// Encrypt seals plaintext into the form iv:tag:ciphertext, all base64
// empty plaintext encrypts to the empty string
func (k *Keeper) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	key, err := k.deriveKey()
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", perrs.Internalf("crypt: cipher init: %v", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceLen)
	if err != nil {
		return "", perrs.Internalf("crypt: gcm init: %v", err)
	}

	iv := make([]byte, nonceLen)
	if _, err := rand.Read(iv); err != nil {
		return "", perrs.Internalf("crypt: nonce generation: %v", err)
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ct, tag := sealed[:len(sealed)-tagLen], sealed[len(sealed)-tagLen:]

	enc := base64.StdEncoding
	return enc.EncodeToString(iv) + ":" + enc.EncodeToString(tag) + ":" + enc.EncodeToString(ct), nil
}

// Decrypt opens a value produced by Encrypt
// returns the empty string for empty, malformed, or tampered input; a
// secret that fails to open is treated as absent so the caller can prompt
// for re-entry
func (k *Keeper) Decrypt(blob string) string {
	if blob == "" {
		return ""
	}
	parts := strings.Split(blob, ":")
	if len(parts) != 3 {
		return ""
	}
	enc := base64.StdEncoding
	iv, err := enc.DecodeString(parts[0])
	if err != nil || len(iv) != nonceLen {
		return ""
	}
	tag, err := enc.DecodeString(parts[1])
	if err != nil || len(tag) != tagLen {
		return ""
	}
	ct, err := enc.DecodeString(parts[2])
	if err != nil {
		return ""
	}

	key, err := k.deriveKey()
	if err != nil {
		return ""
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return ""
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceLen)
	if err != nil {
		return ""
	}

	pt, err := gcm.Open(nil, iv, append(ct, tag...), nil)
	if err != nil {
		return ""
	}
	return string(pt)
}
