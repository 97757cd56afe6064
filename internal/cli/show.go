package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/astrodigest/internal/store"
)

// ShowResult is the JSON-format output of the show command.
type ShowResult struct {
	ID        string          `json:"id"`
	SchemaVer string          `json:"schema_ver"`
	Format    string          `json:"format"`
	Subject   string          `json:"subject"`
	Charts    []string        `json:"charts,omitempty"`
	CreatedAt string          `json:"created_at"`
	Digest    json.RawMessage `json:"digest,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "show [digest-id]",
		Short: "Show a stored digest, or list all stored digests",
		Long: `Show a digest snapshot from the store by its content address.

With --list, print a summary of every stored digest instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return runShowList(rootOpts, cmd)
			}
			if len(args) != 1 {
				return NewExitError(ExitCommandError, "a digest id is required unless --list is set")
			}
			return runShow(rootOpts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list all stored digests")

	return cmd
}

func runShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer s.Close()

	rec, err := s.GetDigest(cmd.Context(), id)
	if err != nil {
		var notFound *store.NotFoundError
		if errors.As(err, &notFound) {
			_ = formatter.Error(ErrCodeStore, notFound.Error(), nil)
			return WrapExitError(ExitCommandError, "digest not found", err)
		}
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load digest", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ShowResult{
			ID:        rec.ID,
			SchemaVer: rec.SchemaVer,
			Format:    rec.Format,
			Subject:   rec.Subject,
			Charts:    rec.ChartIDs,
			CreatedAt: rec.CreatedAt,
			Digest:    json.RawMessage(rec.Payload),
		})
	}

	if _, err := formatter.Writer.Write(append(rec.Payload, '\n')); err != nil {
		return err
	}
	return nil
}

func runShowList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer s.Close()

	records, err := s.ListDigests(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list digests", err)
	}

	if formatter.Format == "json" {
		results := make([]ShowResult, 0, len(records))
		for _, rec := range records {
			results = append(results, ShowResult{
				ID:        rec.ID,
				SchemaVer: rec.SchemaVer,
				Format:    rec.Format,
				Subject:   rec.Subject,
				Charts:    rec.ChartIDs,
				CreatedAt: rec.CreatedAt,
			})
		}
		return formatter.Success(results)
	}

	if len(records) == 0 {
		fmt.Fprintln(formatter.Writer, "No stored digests")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(formatter.Writer, "%s  %s  %s  charts=%v\n",
			rec.ID, rec.CreatedAt, rec.Subject, rec.ChartIDs)
	}
	return nil
}
