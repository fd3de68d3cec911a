// Command visualsign decodes an unsigned blockchain transaction into a
// SignablePayload and prints it, either as canonical JSON or as a short
// human-readable rendering. It is the thin CLI surface around the dispatch
// package's Parse entry point; all the actual decoding work happens there.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/dispatch"
	"github.com/ModChain/visualsign/dynamicabi"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/log"
	"github.com/ModChain/visualsign/visignerr"
)

// Exit codes per the CLI contract: 0 success, 2 parse error, 3 validation
// error, 1 anything else (bad flags, I/O failure, unknown chain).
const (
	exitOK         = 0
	exitOther      = 1
	exitParseError = 2
	exitValidation = 3
)

var chainNames = map[string]chain.Chain{
	"ethereum": chain.EVM,
	"solana":   chain.SVM,
	"sui":      chain.Sui,
	"tron":     chain.Tron,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		chainFlag    string
		txHex        string
		txFile       string
		output       string
		abiMappings  []string
		logLevel     string
	)

	root := &cobra.Command{
		Use:           "visualsign",
		Short:         "Decode an unsigned transaction into a SignablePayload",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetLevel(logLevel)

			ch, ok := chainNames[strings.ToLower(chainFlag)]
			if !ok {
				return fmt.Errorf("unrecognized --chain %q (want ethereum|solana|sui|tron)", chainFlag)
			}

			raw, err := readTransaction(txHex, txFile)
			if err != nil {
				return err
			}

			mappings, err := parseAbiMappings(abiMappings)
			if err != nil {
				return err
			}

			payload, err := dispatch.Parse(cmd.Context(), raw, ch, dispatch.Options{
				AbiMappings: mappings,
			})
			if err != nil {
				return classifyAndPrint(err)
			}

			return printPayload(payload, output)
		},
	}

	root.Flags().StringVar(&chainFlag, "chain", "", "chain family: ethereum|solana|sui|tron")
	root.Flags().StringVar(&txHex, "transaction", "", "transaction bytes as hex or base64")
	root.Flags().StringVar(&txFile, "transaction-file", "", "path to a file containing transaction bytes")
	root.Flags().StringVar(&output, "output", "json", "output format: json|human")
	root.Flags().StringArrayVar(&abiMappings, "abi-json-mappings", nil, "Name:Path:0xAddress, repeatable")
	root.Flags().StringVar(&logLevel, "log-level", "info", "diagnostic log level")
	_ = root.MarkFlagRequired("chain")

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if ce, ok := err.(*cliExit); ok {
			return ce.code
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitOther
	}
	return exitOK
}

// cliExit carries a specific exit code through cobra's error-returning RunE
// without losing the code at the os.Exit boundary.
type cliExit struct {
	code int
	err  error
}

func (c *cliExit) Error() string { return c.err.Error() }

func classifyAndPrint(err error) error {
	fmt.Fprintln(os.Stderr, "error:", err)
	if ve, ok := err.(*visignerr.Error); ok {
		switch ve.Kind {
		case visignerr.KindValidation:
			return &cliExit{code: exitValidation, err: err}
		case visignerr.KindParse, visignerr.KindResolution, visignerr.KindCalldata:
			return &cliExit{code: exitParseError, err: err}
		}
	}
	return &cliExit{code: exitOther, err: err}
}

func readTransaction(txHex, txFile string) (string, error) {
	if txHex != "" && txFile != "" {
		return "", fmt.Errorf("--transaction and --transaction-file are mutually exclusive")
	}
	if txFile != "" {
		b, err := os.ReadFile(txFile)
		if err != nil {
			return "", fmt.Errorf("reading --transaction-file: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	if txHex == "" {
		return "", fmt.Errorf("one of --transaction or --transaction-file is required")
	}
	return txHex, nil
}

// parseAbiMappings parses "Name:Path:0xAddress" entries, reading each named
// ABI JSON file from disk.
func parseAbiMappings(entries []string) ([]dispatch.AbiMapping, error) {
	out := make([]dispatch.AbiMapping, 0, len(entries))
	for _, e := range entries {
		parts := strings.SplitN(e, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed --abi-json-mappings entry %q (want Name:Path:0xAddress)", e)
		}
		name, path, addr := parts[0], parts[1], parts[2]
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading ABI JSON for %s: %w", name, err)
		}
		if _, err := dynamicabi.ParseABIJSON(body); err != nil {
			return nil, fmt.Errorf("parsing ABI JSON for %s: %w", name, err)
		}
		out = append(out, dispatch.AbiMapping{Name: name, JSON: body, Address: addr})
	}
	return out, nil
}

func printPayload(p *fields.SignablePayload, output string) error {
	switch output {
	case "human":
		printHuman(p)
		return nil
	case "json", "":
		b, err := fields.CanonicalJSON(p)
		if err != nil {
			return &cliExit{code: exitValidation, err: err}
		}
		fmt.Println(string(b))
		return nil
	default:
		return fmt.Errorf("unrecognized --output %q (want json|human)", output)
	}
}

func printHuman(p *fields.SignablePayload) {
	fmt.Printf("%s - %s\n", p.PayloadType, p.Title)
	if p.Subtitle != "" {
		fmt.Println(p.Subtitle)
	}
	printFieldsHuman(p.Fields, 0)
}

func printFieldsHuman(fs []*fields.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fs {
		printFieldHuman(f, indent)
	}
}

func printFieldHuman(f *fields.Field, indent string) {
	switch f.Type {
	case fields.TypeDivider:
		fmt.Println(indent + "---")
	case fields.TypePreviewLayout:
		fmt.Printf("%s%s: %s\n", indent, f.Label, f.PreviewLayout.Title)
		printAnnotatedHuman(f.PreviewLayout.Expanded.Fields, indent+"  ")
	case fields.TypeUnknown:
		fmt.Printf("%s%s: <unknown 0x...> %s\n", indent, f.Label, f.Unknown.Explanation)
	default:
		fmt.Printf("%s%s: %s\n", indent, f.Label, fieldValueHuman(f))
	}
}

func printAnnotatedHuman(fs []*fields.AnnotatedField, indent string) {
	for _, af := range fs {
		printFieldHuman(af.Field, indent)
	}
}

func fieldValueHuman(f *fields.Field) string {
	switch f.Type {
	case fields.TypeAddressV2:
		if f.AddressV2.Name != "" {
			return f.AddressV2.Address + " (" + f.AddressV2.Name + ")"
		}
		return f.AddressV2.Address
	case fields.TypeAmountV2:
		return f.AmountV2.Amount + " " + f.AmountV2.Abbreviation
	case fields.TypeNumber:
		return f.Number.Number
	case fields.TypeTextV2:
		return f.TextV2.Text
	default:
		return f.FallbackText
	}
}
