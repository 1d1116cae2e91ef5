package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/crypto"
)

const DefaultStripeBaseURL = "https://api.stripe.com"

// Environment values name the key setting that is used for remote calls.
const (
	EnvironmentLive = "live_api_key"
	EnvironmentTest = "test_api_key"
)

const (
	MsgLiveKeyRequired    = "Please enter a live API Key."
	MsgTestKeyRequired    = "Please enter a test API Key."
	MsgInvalidEnvironment = "Please select a valid API key for use."
)

// StripeConfig holds the gateway settings. Both keys may be stored as
// enc:<iv>:<ciphertext> envelopes, opened with EncryptionKey.
type StripeConfig struct {
	LiveAPIKey    string        `koanf:"live_api_key"`
	TestAPIKey    string        `koanf:"test_api_key"`
	Environment   string        `koanf:"environment"`
	BaseURL       string        `koanf:"base_url" validate:"required,url"`
	ConnTimeout   time.Duration `koanf:"conn_timeout" validate:"required"`
	EncryptionKey string        `koanf:"encryption_key"`
}

type gatewaySettings struct {
	LiveAPIKey  string `validate:"required"`
	TestAPIKey  string `validate:"required"`
	Environment string `validate:"required,oneof=live_api_key test_api_key"`
}

var settingsMessages = map[string]struct {
	key     string
	message string
}{
	"LiveAPIKey":  {EnvironmentLive, MsgLiveKeyRequired},
	"TestAPIKey":  {EnvironmentTest, MsgTestKeyRequired},
	"Environment": {"environment", MsgInvalidEnvironment},
}

// ValidateSettings checks the gateway settings and returns one message per failing
// setting, keyed by setting name. An empty map means the settings are valid.
func (c StripeConfig) ValidateSettings() map[string]string {
	failures := map[string]string{}

	err := validator.New().Struct(gatewaySettings{
		LiveAPIKey:  c.LiveAPIKey,
		TestAPIKey:  c.TestAPIKey,
		Environment: c.Environment,
	})
	if err == nil {
		return failures
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		failures["settings"] = err.Error()
		return failures
	}

	for _, fe := range fieldErrs {
		if m, ok := settingsMessages[fe.StructField()]; ok {
			failures[m.key] = m.message
		}
	}
	return failures
}

// SelectedKey returns the plaintext API key named by Environment.
func (c StripeConfig) SelectedKey() (string, error) {
	var key string
	switch c.Environment {
	case EnvironmentLive:
		key = c.LiveAPIKey
	case EnvironmentTest:
		key = c.TestAPIKey
	default:
		return "", fmt.Errorf("unknown environment %q", c.Environment)
	}

	if !crypto.IsEncrypted(key) {
		return key, nil
	}

	svc, err := crypto.NewAESEncryptionService(c.EncryptionKey)
	if err != nil {
		return "", fmt.Errorf("encryption key: %w", err)
	}
	return svc.DecryptValue(key)
}

// ErrPlaintextLiveKey rejects a live key that is not sealed although an encryption key is configured.
var ErrPlaintextLiveKey = errors.New("live api key must be stored encrypted when stripe.encryption_key is set")

func (c StripeConfig) selectedRaw() string {
	if c.Environment == EnvironmentLive {
		return c.LiveAPIKey
	}
	return c.TestAPIKey
}

// KeyIsPlaintext reports whether the selected key is stored without an enc: envelope.
func (c StripeConfig) KeyIsPlaintext() bool {
	return !crypto.IsEncrypted(c.selectedRaw())
}

// CheckKeyStorage fails when live traffic would use a plaintext key while an
// encryption key is available to seal it.
func (c StripeConfig) CheckKeyStorage() error {
	if c.IsLive() && c.EncryptionKey != "" && c.KeyIsPlaintext() {
		return ErrPlaintextLiveKey
	}
	return nil
}

// IsLive reports whether remote calls go against the live account.
func (c StripeConfig) IsLive() bool {
	return c.Environment == EnvironmentLive
}
