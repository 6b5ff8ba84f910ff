package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flickrindexer/pkg/credentials"
	"flickrindexer/pkg/ui"
)

func newAuthCmd(opts *options) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Flickr API credentials",
		Long: `Manage the Flickr API key and secret stored in the system keychain.

Credentials in config.json or the environment take precedence over the
keychain. Get a key at https://www.flickr.com/services/apps/create/.`,
	}

	authCmd.AddCommand(newLoginCmd(opts))
	authCmd.AddCommand(newLogoutCmd(opts))
	authCmd.AddCommand(newStatusCmd(opts))

	return authCmd
}

func newLoginCmd(opts *options) *cobra.Command {
	var apiKey, apiSecret string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store Flickr API credentials in the system keychain",
		Long: `Store a Flickr API key and secret in the system keychain.

Values not given as flags are prompted for. The secret is read without
echo when standard input is a terminal.`,
		Example: `  # Interactive login
  flickr-indexer auth login

  # Non-interactive
  flickr-indexer auth login --api-key KEY --api-secret SECRET`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts, apiKey, apiSecret)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Flickr API key")
	cmd.Flags().StringVar(&apiSecret, "api-secret", "", "Flickr API secret")

	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd, opts)
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether credentials are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts)
		},
	}
}

func runLogin(cmd *cobra.Command, opts *options, apiKey, apiSecret string) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	var err error
	if apiKey == "" {
		fmt.Fprint(out, "Flickr API key: ")
		if apiKey, err = readLine(reader); err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}
	if apiSecret == "" {
		fmt.Fprint(out, "Flickr API secret: ")
		if apiSecret, err = readSecret(cmd.InOrStdin(), reader, out); err != nil {
			return fmt.Errorf("failed to read API secret: %w", err)
		}
	}

	creds := &credentials.Credentials{APIKey: apiKey, APISecret: apiSecret}
	if err := credentials.NewKeyringStore().Store(opts.profile, creds); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	p := ui.NewPrinter(out)
	p.Success("Credentials stored")
	p.Info("Profile", profileName(opts.profile))
	p.Info("API key", credentials.Mask(apiKey))
	return nil
}

func runLogout(cmd *cobra.Command, opts *options) error {
	p := ui.NewPrinter(cmd.OutOrStdout())

	err := credentials.NewKeyringStore().Delete(opts.profile)
	if errors.Is(err, credentials.ErrCredentialsNotFound) {
		p.Warning("No credentials stored", profileName(opts.profile))
		return nil
	}
	if err != nil {
		return err
	}

	p.Success("Credentials removed")
	return nil
}

func runStatus(cmd *cobra.Command, opts *options) error {
	p := ui.NewPrinter(cmd.OutOrStdout())

	store := credentials.NewKeyringStore()
	if !store.Available() {
		p.Warning("System keyring unavailable", "set api_key and api_secret in the config file or environment")
		return nil
	}

	creds, err := store.Retrieve(opts.profile)
	if errors.Is(err, credentials.ErrCredentialsNotFound) {
		p.Warning("No credentials stored", profileName(opts.profile))
		return nil
	}
	if err != nil {
		return err
	}

	p.Info("Profile", profileName(opts.profile))
	p.Info("API key", credentials.Mask(creds.APIKey))
	p.Info("Stored", creds.LastModified.Format("2006-01-02 15:04"))
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads without echo from a terminal, and a plain line otherwise
func readSecret(in io.Reader, r *bufio.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return readLine(r)
}

func profileName(profile string) string {
	if profile == "" {
		return credentials.DefaultProfile
	}
	return profile
}
