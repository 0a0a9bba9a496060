package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/lessensdelharmonie/harmonie/internal/api/validation"
	"github.com/lessensdelharmonie/harmonie/internal/config"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
	"github.com/lessensdelharmonie/harmonie/internal/server"
	"github.com/lessensdelharmonie/harmonie/internal/service"
	"github.com/lessensdelharmonie/harmonie/internal/version"
)

// ErrRejected is returned when a payload does not pass validation
var ErrRejected = errors.New("submission rejected")

// NewRootCommand builds the harmonie command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "harmonie",
		Short: "Les Sens de l'Harmonie contact form service",
		Long: `harmonie serves and checks the contact form of the Les Sens de l'Harmonie
website: run the API, validate payloads offline, print the form schema, or
send a submission to a running site.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newValidateCmd(),
		newSchemaCmd(),
		newSubmitCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Configuration is read from the environment and from
.env files (see ENV, PORT, ALLOWED_ORIGINS, LOG_* and SUBMISSIONS_LOG_FILE).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, cfg)
		},
	}
}

func newValidateCmd() *cobra.Command {
	var locale, region string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a payload without sending it",
		Long: `Check a contact form payload offline and print the record it would produce,
or the validation errors. Reads stdin when no file is given.

Example:
  harmonie validate payload.json
  echo '{"name":"A"}' | harmonie validate --locale fr`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd, args)
			if err != nil {
				return err
			}

			logger := logging.NewWriterLogger(cmd.ErrOrStderr(), logging.LevelError)
			svc := service.NewContactService(validation.New(), service.NewJournalRecorder(io.Discard), logger, region)

			submission, result, err := svc.Preview(cmd.Context(), payload, validation.MatchLocale(locale))
			if err != nil {
				if printErr := printJSON(cmd.OutOrStdout(), result); printErr != nil {
					return printErr
				}
				if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrMalformedPayload) {
					return ErrRejected
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), submission)
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "en", "Language of field messages (Accept-Language syntax)")
	cmd.Flags().StringVar(&region, "region", "FR", "Default region for phone normalization")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the contact form schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), validation.New().Schema(validation.MatchLocale(locale)))
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "en", "Language of field messages (Accept-Language syntax)")
	return cmd
}

func newSubmitCmd() *cobra.Command {
	var (
		baseURL string
		locale  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit [file]",
		Short: "Send a payload to a running site",
		Long: `Send a contact form payload to a running site and print its response.
Reads stdin when no file is given.

Example:
  harmonie submit --url https://lessensdelharmonie.fr payload.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd, args)
			if err != nil {
				return err
			}

			client := NewClient(baseURL, timeout)

			s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " Sending submission..."
			s.Start()
			result, status, err := client.Submit(cmd.Context(), payload, locale)
			s.Stop()

			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("%w (status %d)", ErrRejected, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the site")
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "Accept-Language header to send")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Request timeout")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

func readPayload(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return data, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
