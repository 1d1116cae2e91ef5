package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/crypto"
)

// encryptKey seals an API key into the enc:<iv>:<ciphertext> form accepted by
// stripe.live_api_key and stripe.test_api_key. The key comes from args, or from
// the first line of in when args is empty.
func encryptKey(out io.Writer, in io.Reader, args []string, encryptionKey string) error {
	var plaintext string
	if len(args) > 0 {
		plaintext = strings.TrimSpace(args[0])
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read api key: %w", err)
		}
		plaintext = strings.TrimSpace(line)
	}

	if plaintext == "" {
		return errors.New("usage: gateway encrypt-key <api key>")
	}
	if crypto.IsEncrypted(plaintext) {
		return errors.New("api key is already encrypted")
	}

	svc, err := crypto.NewAESEncryptionService(encryptionKey)
	if err != nil {
		return fmt.Errorf("encryption key: %w", err)
	}

	sealed, err := svc.EncryptValue(plaintext)
	if err != nil {
		return fmt.Errorf("encrypt api key: %w", err)
	}

	_, err = fmt.Fprintln(out, sealed)
	return err
}
