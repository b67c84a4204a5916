package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCommand(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFn()
			st := e.app.Session()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "state:         %s\n", st.Phase())
			fmt.Fprintf(out, "authenticated: %t\n", st.Authenticated)
			fmt.Fprintf(out, "service:       %s\n", e.cfg.APIBaseURL)
			fmt.Fprintf(out, "credentials:   %s\n", e.cfg.CredentialBackend)
			return nil
		},
	}
}

func newProfileCommand(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := envFn().app.Profile(cmd.Context())
			if err != nil {
				return report(cmd, err, "Could not load profile")
			}
			out := cmd.OutOrStdout()
			if p.User != nil {
				fmt.Fprintf(out, "name:    %s\n", p.User.Name)
				fmt.Fprintf(out, "email:   %s\n", p.User.Email)
			} else {
				fmt.Fprintln(out, "no cached profile")
			}
			if p.Subject != "" {
				fmt.Fprintf(out, "subject: %s\n", p.Subject)
			}
			if p.ExpiresAt != nil {
				status := "valid"
				if p.Expired(time.Now()) {
					status = "expired"
				}
				fmt.Fprintf(out, "expires: %s (%s)\n", p.ExpiresAt.Format(time.RFC3339), status)
			}
			return nil
		},
	}
}

func newOpenCommand(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Show how a client route resolves for the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := envFn().app.Open(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path=%s view=%s decision=%s", res.Path, res.View, res.Decision.Kind)
			if res.Decision.Target != "" {
				fmt.Fprintf(out, " target=%s", res.Decision.Target)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
