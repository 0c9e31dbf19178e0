package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/courtbook/internal/constants"
	"github.com/julianstephens/courtbook/internal/keyring"
	"github.com/julianstephens/courtbook/internal/logger"
)

// ErrMissingSecrets is returned by Secrets.Validate when any value is empty.
var ErrMissingSecrets = errors.New("missing secrets")

// Keyring keys, also the unprefixed environment variable names.
const (
	KeyEmail           = "EMAIL_ADDRESS"
	KeyPassword        = "PASSWORD"
	KeyCardHolder      = "CARD_HOLDER"
	KeyCardNumber      = "CARD_NUMBER"
	KeyCVC             = "CVC"
	KeyExpirationMonth = "EXPIRATION_MONTH"
	KeyExpirationYear  = "EXPIRATION_YEAR"
	KeyEventName       = "EVENT_NAME"
	KeyURL             = "URL"
	KeyBillingAddress  = "BILLING_ADDRESS"
)

// SecretKeys lists every secret in prompt order.
var SecretKeys = []string{
	KeyEmail,
	KeyPassword,
	KeyCardHolder,
	KeyCardNumber,
	KeyCVC,
	KeyExpirationMonth,
	KeyExpirationYear,
	KeyEventName,
	KeyURL,
	KeyBillingAddress,
}

var sensitiveKeys = map[string]bool{
	KeyPassword:   true,
	KeyCardNumber: true,
	KeyCVC:        true,
}

// IsSensitive reports whether key must never be shown, even partially.
func IsSensitive(key string) bool {
	return sensitiveKeys[key]
}

// Secrets are the credentials and payment details for one run.
type Secrets struct {
	Email           string `envconfig:"EMAIL_ADDRESS"`
	Password        string `envconfig:"PASSWORD"`
	CardHolder      string `envconfig:"CARD_HOLDER"`
	CardNumber      string `envconfig:"CARD_NUMBER"`
	CVC             string `envconfig:"CVC"`
	ExpirationMonth string `envconfig:"EXPIRATION_MONTH"`
	ExpirationYear  string `envconfig:"EXPIRATION_YEAR"`
	EventName       string `envconfig:"EVENT_NAME"`
	URL             string `envconfig:"URL"`
	// BillingAddress is the visible label of the saved billing address to
	// pick at checkout.
	BillingAddress string `envconfig:"BILLING_ADDRESS"`
}

// SecretStore is the keyring the secrets fall back to.
type SecretStore interface {
	Get(key string) (string, error)
}

func (s *Secrets) fields() []struct {
	key   string
	value *string
} {
	return []struct {
		key   string
		value *string
	}{
		{KeyEmail, &s.Email},
		{KeyPassword, &s.Password},
		{KeyCardHolder, &s.CardHolder},
		{KeyCardNumber, &s.CardNumber},
		{KeyCVC, &s.CVC},
		{KeyExpirationMonth, &s.ExpirationMonth},
		{KeyExpirationYear, &s.ExpirationYear},
		{KeyEventName, &s.EventName},
		{KeyURL, &s.URL},
		{KeyBillingAddress, &s.BillingAddress},
	}
}

// Get returns the value stored for key.
func (s Secrets) Get(key string) (string, bool) {
	for _, f := range s.fields() {
		if f.key == key {
			return *f.value, true
		}
	}
	return "", false
}

// LoadSecrets reads secrets from envFile (see LoadEnvFile), then the
// environment, then fills whatever is still empty from store. A nil store
// skips the keyring. The result is not validated.
func LoadSecrets(store SecretStore, envFile string) (Secrets, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return Secrets{}, err
	}

	var s Secrets
	if err := envconfig.Process(constants.EnvPrefix, &s); err != nil {
		return Secrets{}, errors.Wrap(err, "failed to process env secrets")
	}
	if store == nil {
		return s, nil
	}

	for _, f := range s.fields() {
		if *f.value != "" {
			continue
		}
		value, err := store.Get(f.key)
		switch {
		case err == nil:
			*f.value = value
		case errors.Is(err, keyring.ErrNotFound):
		case errors.Is(err, keyring.ErrKeyringUnavailable):
			logger.Debug("keyring unavailable, using environment only", "err", err)
			return s, nil
		default:
			return Secrets{}, errors.Wrapf(err, "read %s from keyring", f.key)
		}
	}
	return s, nil
}

// Missing returns the keys that have no value, in SecretKeys order.
func (s Secrets) Missing() []string {
	var missing []string
	for _, f := range s.fields() {
		if strings.TrimSpace(*f.value) == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}

// Validate reports every missing secret at once.
func (s Secrets) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return errors.Mark(errors.Newf("missing secrets: %s", strings.Join(missing, ", ")), ErrMissingSecrets)
	}
	return nil
}

// Redacted returns every secret keyed by name, masked for display.
func (s Secrets) Redacted() map[string]string {
	out := make(map[string]string, len(SecretKeys))
	for _, f := range s.fields() {
		out[f.key] = Mask(f.key, *f.value)
	}
	return out
}

// Mask hides a value for display. Sensitive values are fully hidden; others
// keep their first and last characters.
func Mask(key, value string) string {
	switch {
	case value == "":
		return "(unset)"
	case IsSensitive(key):
		return "********"
	case len(value) <= 4:
		return strings.Repeat("*", len(value))
	default:
		return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
	}
}
