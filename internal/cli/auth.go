package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookshelf/internal/app"
)

func newLoginCommand(envFn func() *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFn()
			in := bufio.NewReader(cmd.InOrStdin())
			var err error
			if email == "" {
				if email, err = prompt(cmd, in, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = readPassword(cmd, in, "Password: "); err != nil {
					return err
				}
			}
			target, err := e.app.Login(cmd.Context(), email, password)
			if err != nil {
				return report(cmd, err, "Login failed")
			}
			notify(cmd, app.Success("Login successful!"))
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newRegisterCommand(envFn func() *env) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFn()
			var err error
			if password == "" {
				if password, err = readPassword(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: "); err != nil {
					return err
				}
			}
			conf, err := e.app.Register(cmd.Context(), name, email, password)
			if err != nil {
				return report(cmd, err, "Registration failed")
			}
			msg := "Registration successful!"
			if conf.Message != "" {
				msg += " " + conf.Message
			}
			notify(cmd, app.Success(msg))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := envFn().app.Logout(cmd.Context())
			notify(cmd, app.Notice{Level: app.LevelInfo, Message: "Logged out"})
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword masks input on a terminal and falls back to a plain line read
// when stdin is piped.
func readPassword(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return prompt(cmd, in, label)
}
