package system

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/cli"
	"github.com/julianstephens/courtbook/internal/config"
	"github.com/julianstephens/courtbook/internal/keyring"
)

var errKeyringUnavailable = errors.New("keyring unavailable")

// promptSecrets asks for a value for every key and writes the answers into
// values. Tests replace it.
var promptSecrets = func(keys []string, values map[string]*string) error {
	var fields []huh.Field
	for _, key := range keys {
		input := huh.NewInput().
			Title(secretTitle(key)).
			Value(values[key]).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.Newf("%s cannot be empty", key)
				}
				return nil
			})
		if config.IsSensitive(key) {
			input = input.EchoMode(huh.EchoModePassword)
		}
		fields = append(fields, input)
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return errors.Wrap(err, "interactive form error")
	}
	return nil
}

// secretTitle turns EXPIRATION_MONTH into "Expiration month".
func secretTitle(key string) string {
	words := strings.Split(strings.ToLower(key), "_")
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	title := strings.Join(words, " ")
	switch key {
	case config.KeyCVC, config.KeyURL:
		return strings.ToUpper(title)
	case config.KeyBillingAddress:
		return title + " (label shown at checkout)"
	}
	return title
}

// selectKeys resolves the keys a command acts on. No keys means all of them.
func selectKeys(keys []string) ([]string, error) {
	if len(keys) == 0 {
		return config.SecretKeys, nil
	}
	var out []string
	for _, k := range keys {
		k = strings.ToUpper(strings.TrimSpace(k))
		if !slices.Contains(config.SecretKeys, k) {
			return nil, errors.Newf("unknown secret %q (want one of %s)", k, strings.Join(config.SecretKeys, ", "))
		}
		out = append(out, k)
	}
	return out, nil
}

func requireKeyring(ctx *cli.Context) error {
	if ctx.Keyring == nil || !ctx.Keyring.IsAvailable() {
		fmt.Fprintln(ctx.Stdout(), "❌ OS keyring is not available on this system")
		return errKeyringUnavailable
	}
	return nil
}

// SecretsSetCmd stores secrets in the OS keyring
type SecretsSetCmd struct {
	Keys    []string `arg:"" optional:"" help:"Secrets to set (default: all)."`
	FromEnv bool     `help:"Copy the values currently set in the environment or env file instead of prompting." name:"from-env"`
}

func (cmd *SecretsSetCmd) Run(ctx *cli.Context) error {
	if err := requireKeyring(ctx); err != nil {
		return err
	}
	keys, err := selectKeys(cmd.Keys)
	if err != nil {
		return err
	}

	values := make(map[string]*string, len(keys))
	for _, k := range keys {
		values[k] = new(string)
	}

	if cmd.FromEnv {
		secrets, err := config.LoadSecrets(nil, ctx.EnvFile)
		if err != nil {
			return err
		}
		for _, k := range keys {
			*values[k], _ = secrets.Get(k)
		}
	} else if err := promptSecrets(keys, values); err != nil {
		return err
	}

	stored := 0
	for _, k := range keys {
		v := strings.TrimSpace(*values[k])
		if v == "" {
			fmt.Fprintf(ctx.Stdout(), "ℹ %s has no value, skipped\n", k)
			continue
		}
		if err := ctx.Keyring.Set(k, v); err != nil {
			return err
		}
		stored++
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Stored %d secret(s) in OS keyring\n", stored)
	return nil
}

// SecretsStatusCmd shows where each secret comes from, masked
type SecretsStatusCmd struct{}

func (cmd *SecretsStatusCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	available := ctx.Keyring != nil && ctx.Keyring.IsAvailable()
	if available {
		fmt.Fprintln(out, "✓ OS keyring is available")
	} else {
		fmt.Fprintln(out, "⚠ OS keyring is not available, secrets come from the environment only")
	}

	fromEnv, err := config.LoadSecrets(nil, ctx.EnvFile)
	if err != nil {
		return err
	}

	width := 0
	for _, k := range config.SecretKeys {
		width = max(width, len(k))
	}
	for _, k := range config.SecretKeys {
		value, _ := fromEnv.Get(k)
		source := "environment"
		if value == "" && available {
			stored, err := ctx.Keyring.Get(k)
			switch {
			case err == nil:
				value, source = stored, "keyring"
			case !errors.Is(err, keyring.ErrNotFound):
				return err
			}
		}
		if value == "" {
			fmt.Fprintf(out, "  ❌ %-*s  missing\n", width, k)
			continue
		}
		fmt.Fprintf(out, "  ✓ %-*s  %s (%s)\n", width, k, config.Mask(k, value), source)
	}
	return nil
}

// SecretsDeleteCmd removes secrets from the OS keyring
type SecretsDeleteCmd struct {
	Keys []string `arg:"" optional:"" help:"Secrets to delete (default: all)."`
}

func (cmd *SecretsDeleteCmd) Run(ctx *cli.Context) error {
	if err := requireKeyring(ctx); err != nil {
		return err
	}
	keys, err := selectKeys(cmd.Keys)
	if err != nil {
		return err
	}

	deleted := 0
	for _, k := range keys {
		err := ctx.Keyring.Delete(k)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, keyring.ErrNotFound):
			if len(cmd.Keys) > 0 {
				fmt.Fprintf(ctx.Stdout(), "ℹ %s is not stored in keyring\n", k)
			}
		default:
			return err
		}
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Deleted %d secret(s) from OS keyring\n", deleted)
	return nil
}
