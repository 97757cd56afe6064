package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/astrodigest/internal/astro"
	"github.com/roach88/astrodigest/internal/canon"
	"github.com/roach88/astrodigest/internal/digest"
	"github.com/roach88/astrodigest/internal/schema"
)

// BuildResult is the JSON-format output of the build command.
type BuildResult struct {
	ID     string          `json:"id"`               // content address of the payload
	Digest json.RawMessage `json:"digest"`           // canonical payload bytes
	RunID  string          `json:"run_id,omitempty"` // set when --store is used
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		orbPolicyPath string
		saveToStore   bool
		skipValidate  bool
	)

	cmd := &cobra.Command{
		Use:   "build <request.json>",
		Short: "Build a canonical digest from raw chart data",
		Long: `Build a canonical chart digest from a raw calculation request.

The request carries up to three charts (natal, design, transit) plus
request metadata. Pass "-" to read the request from stdin. Output is the
canonical payload: byte-identical for equivalent inputs regardless of
input shape or key order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(rootOpts, args[0], orbPolicyPath, saveToStore, skipValidate, cmd)
		},
	}

	cmd.Flags().StringVar(&orbPolicyPath, "orb-policy", "", "YAML file overriding aspect orb caps")
	cmd.Flags().BoolVar(&saveToStore, "store", false, "save the digest to the snapshot store")
	cmd.Flags().BoolVar(&skipValidate, "no-validate", false, "skip schema validation of the output")

	return cmd
}

func runBuild(opts *RootOptions, inputPath, orbPolicyPath string, saveToStore, skipValidate bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	raw, err := readInput(cmd, inputPath)
	if err != nil {
		_ = formatter.Error(ErrCodeInputRead, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read request", err)
	}

	var req digest.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		_ = formatter.Error(ErrCodeDecode, fmt.Sprintf("request is not valid JSON: %v", err), nil)
		return WrapExitError(ExitCommandError, "failed to decode request", err)
	}

	policy, err := loadOrbPolicy(orbPolicyPath)
	if err != nil {
		_ = formatter.Error(ErrCodeOrbPolicy, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid orb policy", err)
	}

	logger := newLogger(cmd, opts.Verbose)
	defer logger.Sync()

	builder := digest.NewBuilder(
		digest.WithOrbPolicy(policy),
		digest.WithLogger(logger),
	)
	payload := builder.Build(req)

	data, err := canon.Marshal(payload)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to serialize digest", err)
	}
	id := canon.DigestIDBytes(data)

	if !skipValidate {
		if errs := schema.Validate(data); len(errs) > 0 {
			_ = formatter.Error(errs[0].Code, errs[0].Message, errs)
			return NewExitError(ExitFailure, fmt.Sprintf("digest failed schema validation with %d error(s)", len(errs)))
		}
	}

	result := BuildResult{ID: id, Digest: json.RawMessage(data)}

	if saveToStore {
		run, err := saveDigest(cmd.Context(), opts.DB, id, data, payload, inputPath)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to store digest", err)
		}
		result.RunID = run.RunID
		formatter.VerboseLog("Stored digest %s (run %s) in %s", id, run.RunID, opts.DB)
	}

	if assemblyFailed(payload) {
		// The error payload is still emitted so callers can inspect it.
		if err := outputBuild(formatter, result, data); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "digest assembly failed")
	}

	formatter.VerboseLog("Digest %s", id)
	return outputBuild(formatter, result, data)
}

// outputBuild writes the build result: JSON format wraps payload and id in
// the standard envelope, text format emits the raw canonical payload.
func outputBuild(formatter *OutputFormatter, result BuildResult, data []byte) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	if _, err := formatter.Writer.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// assemblyFailed reports whether the payload is the whole-digest error
// shape (metadata carries an error field).
func assemblyFailed(payload canon.Object) bool {
	md, ok := payload.Get("metadata")
	if !ok {
		return false
	}
	obj, ok := md.(canon.Object)
	return ok && obj.Has("error")
}

// loadOrbPolicy reads a YAML orb policy file over the default caps.
func loadOrbPolicy(path string) (astro.OrbPolicy, error) {
	policy := astro.DefaultOrbPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return astro.OrbPolicy{}, fmt.Errorf("read orb policy %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return astro.OrbPolicy{}, fmt.Errorf("parse orb policy %s: %w", path, err)
	}

	if policy.Luminary <= 0 || policy.Planet <= 0 || policy.Asteroid <= 0 {
		return astro.OrbPolicy{}, fmt.Errorf("orb policy caps must be positive (lum=%v planet=%v asteroid=%v)",
			policy.Luminary, policy.Planet, policy.Asteroid)
	}
	return policy, nil
}
