package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sosmarketplace/sos-board/internal/board"
	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/pkg/config"
	"github.com/sosmarketplace/sos-board/pkg/logger"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Server        string
	As            string
	Tab           string
	Timeout       time.Duration
	Format        string
	SuperadminKey string
	LogLevel      string

	// newAPI is swapped in tests.
	newAPI func(opts *RootOptions) (board.API, error)
}

// NewRootCommand creates the sosctl root command. Defaults come from the
// SOS_* client environment.
func NewRootCommand() *cobra.Command {
	defaults := &config.ClientConfig{
		ServerURL:     "http://localhost:8080",
		Timeout:       10 * time.Second,
		SuperadminKey: board.DefaultSuperadminKey,
		LogLevel:      "error",
	}
	if loaded, err := config.LoadClient(); err == nil {
		defaults = loaded
	}
	return newRootCommand(&RootOptions{
		SuperadminKey: defaults.SuperadminKey,
		LogLevel:      defaults.LogLevel,
		newAPI:        httpAPI,
	}, defaults)
}

func newRootCommand(opts *RootOptions, defaults *config.ClientConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sosctl",
		Short: "sosctl - SOS Marketplace board client",
		Long: `Browse and manage the SOS Marketplace board.

Every change is sent to the server, then the whole board is reloaded and
the view is printed again from the fresh copy.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := items.ParseTab(opts.Tab); err != nil {
				return fmt.Errorf("invalid tab %q: must be now or preorder", opts.Tab)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", defaults.ServerURL, "board server url")
	cmd.PersistentFlags().StringVar(&opts.As, "as", defaults.As, "vendor key or superadmin secret to act as")
	cmd.PersistentFlags().StringVar(&opts.Tab, "tab", string(items.TabNow), "active tab (now|preorder)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", defaults.Timeout, "per-request timeout")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewViewCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewOrderCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewAddItemCommand(opts))
	cmd.AddCommand(NewDeleteItemCommand(opts))
	cmd.AddCommand(NewSoldOutCommand(opts))
	cmd.AddCommand(NewClearOrdersCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewDeleteVendorCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func httpAPI(opts *RootOptions) (board.API, error) {
	return board.NewClient(opts.Server, board.WithTimeout(opts.Timeout))
}

// session is one command's run of the loop: load, resolve identity, act, print.
type session struct {
	opts     *RootOptions
	board    *board.Board
	state    board.State
	out      io.Writer
	progress io.Writer
}

func openSession(ctx context.Context, cmd *cobra.Command, opts *RootOptions, login bool) (*session, error) {
	api, err := opts.newAPI(opts)
	if err != nil {
		return nil, err
	}
	s := &session{opts: opts, out: cmd.OutOrStdout(), progress: cmd.ErrOrStderr()}
	s.board, err = board.New(board.Params{
		API:           api,
		SuperadminKey: opts.SuperadminKey,
		Logger: logger.New(logger.Options{
			ServiceName: "sosctl",
			Level:       logger.ParseLevel(opts.LogLevel),
			Output:      cmd.ErrOrStderr(),
		}),
		OnChange: s.preview,
	})
	if err != nil {
		return nil, err
	}
	tab, _ := items.ParseTab(opts.Tab)
	st, err := s.board.Reload(ctx, board.NewState().WithTab(tab))
	if err != nil {
		return nil, err
	}
	if login && opts.As != "" {
		if st, err = s.board.Login(ctx, st, opts.As); err != nil {
			return nil, err
		}
	}
	s.state = st
	return s, nil
}
