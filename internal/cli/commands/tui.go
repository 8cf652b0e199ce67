package commands

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhath/pgpeek/internal/client"
	"github.com/nhath/pgpeek/internal/history"
	"github.com/nhath/pgpeek/internal/ui"
)

// NewTUICommand creates the tui command.
func NewTUICommand(sealer SealerFunc) *cobra.Command {
	var (
		apiURL      string
		debug       bool
		profileName string
		connect     string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse through a running API",
		Long: `Open the terminal browser against a pgpeek API server.

With --profile or --connect the connection is made on start.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())
			if !cmd.Flags().Changed("api") {
				apiURL = cfg.Client.APIURL
			}

			if debug {
				f, err := tea.LogToFile("debug.log", "debug")
				if err != nil {
					return fmt.Errorf("open debug log: %w", err)
				}
				defer f.Close()
				log.SetOutput(f)
			}

			opts := ui.Options{
				Theme:            cfg.Theme,
				RowLimits:        cfg.Client.RowLimits,
				DefaultLimit:     cfg.Client.DefaultLimit,
				Debounce:         time.Duration(cfg.Client.DebounceMs) * time.Millisecond,
				ConnectionString: connect,
				AutoConnect:      connect != "",
			}

			if profileName != "" {
				p, err := cfg.GetProfile(profileName)
				if err != nil {
					return err
				}
				if p.EncryptedPassword != "" {
					s, err := sealer()
					if err != nil {
						return fmt.Errorf("open keyring: %w", err)
					}
					if err := cfg.UnsealPasswords(s); err != nil {
						return err
					}
				}
				cs, err := p.ConnectionString()
				if err != nil {
					return err
				}
				opts.ConnectionString = cs
				opts.AutoConnect = true
			}

			store := openHistory()
			if store != nil {
				defer store.Close()
			}

			model := ui.NewModel(client.New(apiURL, nil), store, opts)
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "http://localhost:3001", "API base URL")
	cmd.Flags().BoolVar(&debug, "debug", false, "log to debug.log")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "connect with a saved profile")
	cmd.Flags().StringVar(&connect, "connect", "", "connect with a connection string")
	cmd.MarkFlagsMutuallyExclusive("profile", "connect")

	return cmd
}

// openHistory opens the history store. History is optional, so failures
// are logged and nil is returned.
func openHistory() *history.Store {
	path, err := history.DefaultPath()
	if err != nil {
		log.Printf("history disabled: %v", err)
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		log.Printf("history disabled: %v", err)
		return nil
	}
	return store
}

