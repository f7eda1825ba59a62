package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var requestFile string

// VerifyRequest is the JSON input of the verify command.
type VerifyRequest struct {
	PublicKeys []HexBytes `json:"public_keys"`
	Messages   []HexBytes `json:"messages"`
	Signature  HexBytes   `json:"signature"`
}

// VerifyResult is printed by the verify command.
type VerifyResult struct {
	Valid          bool `json:"valid"`
	Pairs          int  `json:"pairs"`
	CachedPairings int  `json:"cached_pairings"`
}

// VerifyCmd verifies an aggregate signature through the pairing cache.
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify an augmented-scheme aggregate signature",
	Long: `Verify an augmented-scheme aggregate signature, reusing cached pairings.

The request is a JSON object with hex encoded fields:

  {"public_keys": ["..."], "messages": ["..."], "signature": "..."}

Use --request - to read it from stdin.`,
	RunE: verify,
}

func init() {
	VerifyCmd.Flags().StringVar(&requestFile, "request", "", "path to the JSON request, - for stdin")
}

func verify(cmd *cobra.Command, _ []string) error {
	req, err := readVerifyRequest(cmd.InOrStdin(), requestFile)
	if err != nil {
		return err
	}

	env, err := newCacheEnv(config, DefaultMetricsProvider(config.Instrumentation))
	if err != nil {
		return err
	}
	defer env.Close()

	valid, err := env.cache.AggregateVerifyBytes(toBytes(req.PublicKeys), toBytes(req.Messages), req.Signature)
	if err != nil {
		return fmt.Errorf("can't verify request: %w", err)
	}
	logger.Info("Verified aggregate signature", "valid", valid, "pairs", len(req.PublicKeys))

	if err := env.persist(); err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), VerifyResult{
		Valid:          valid,
		Pairs:          len(req.PublicKeys),
		CachedPairings: env.cache.Len(),
	})
}

func readVerifyRequest(stdin io.Reader, path string) (*VerifyRequest, error) {
	var (
		bz  []byte
		err error
	)
	switch path {
	case "":
		return nil, errors.New("--request is required")
	case "-":
		bz, err = io.ReadAll(stdin)
	default:
		bz, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("can't read request: %w", err)
	}

	var req VerifyRequest
	if err := json.Unmarshal(bz, &req); err != nil {
		return nil, fmt.Errorf("can't parse request: %w", err)
	}
	return &req, nil
}

func printJSON(w io.Writer, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bz))
	return err
}
