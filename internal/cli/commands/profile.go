package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nhath/pgpeek/internal/config"
)

// NewProfileCommand creates the profile command group.
func NewProfileCommand(sealer SealerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved connections",
		Long: `Manage saved connection profiles. Passwords are stored encrypted with a key
kept in the system keyring.`,
	}

	cmd.AddCommand(newProfileAddCommand(sealer))
	cmd.AddCommand(newProfileListCommand())
	cmd.AddCommand(newProfileRemoveCommand())

	return cmd
}

func newProfileAddCommand(sealer SealerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <connection-string>",
		Short: "Save a connection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFrom(cmd.Context())

			p, err := config.NewProfile(args[0], args[1])
			if err != nil {
				return err
			}
			if err := cfg.AddProfile(p); err != nil {
				return err
			}

			if p.Password != "" {
				s, err := sealer()
				if err != nil {
					return fmt.Errorf("open keyring: %w", err)
				}
				if err := cfg.SealPasswords(s); err != nil {
					return err
				}
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s (%s)\n", p.Name, p.Redacted())
			return nil
		},
	}
}

func newProfileListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())
			if len(cfg.Profiles) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No profiles")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range cfg.Profiles {
				password := ""
				if p.EncryptedPassword != "" {
					password = "(password saved)"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.URL, password)
			}
			return w.Flush()
		},
	}
}

func newProfileRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved connection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFrom(cmd.Context())
			if err := cfg.RemoveProfile(args[0]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %s\n", args[0])
			return nil
		},
	}
}
