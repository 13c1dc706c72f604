package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/shapetypes/internal/registry"
	"github.com/funvibe/shapetypes/internal/runtime"
	"github.com/funvibe/shapetypes/pkg/shapetypes"
)

var (
	checkFunc   string
	checkParam  string
	checkReturn bool
	checkDB     string
)

var checkCmd = &cobra.Command{
	Use:   "check [type-expr] [json-file]",
	Short: "Validate a JSON value against a type expression or signature",
	Long: `Decodes a JSON value (from a file, or stdin when the file is omitted
or "-") and validates it against a type. The type comes from a type
expression argument, or from a cached signature via --func with --param
or --return. Exits 1 when the value does not match, printing where and
why.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkFunc != "" {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return runCheckSignature(source)
		}
		if len(args) == 0 {
			return fmt.Errorf("a type expression is required unless --func is given")
		}
		source := "-"
		if len(args) == 2 {
			source = args[1]
		}
		return runCheckExpr(args[0], source)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkFunc, "func", "", "check against a cached signature")
	checkCmd.Flags().StringVar(&checkParam, "param", "", "parameter name within --func")
	checkCmd.Flags().BoolVar(&checkReturn, "return", false, "check the return type of --func")
	checkCmd.Flags().StringVar(&checkDB, "db", "signatures.db", "signature cache path")
	rootCmd.AddCommand(checkCmd)
}

func runCheckExpr(expr, source string) error {
	logger := newLogger()

	tv, err := shapetypes.CompileString(expr, false)
	if err != nil {
		return err
	}
	defer shapetypes.Release(tv)
	logger.Debug("type compiled", "canonical", shapetypes.Stringify(tv))

	value, err := readValue(source)
	if err != nil {
		return err
	}
	return report(shapetypes.Validate(tv, value), value)
}

func runCheckSignature(source string) error {
	store, err := registry.OpenStore(checkDB)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := store.Load()
	if err != nil {
		return err
	}
	reg := registry.New(newLogger())
	if err := reg.Load(cfg); err != nil {
		return err
	}

	sig, ok := reg.Lookup(checkFunc)
	if !ok {
		return fmt.Errorf("unknown signature %q in %s", checkFunc, checkDB)
	}

	tv, err := signatureType(sig)
	if err != nil {
		return err
	}

	value, err := readValue(source)
	if err != nil {
		return err
	}
	return report(shapetypes.Validate(tv, value), value)
}

func signatureType(sig *registry.Signature) (shapetypes.Type, error) {
	if checkReturn {
		if !sig.HasReturn {
			return shapetypes.Type{}, fmt.Errorf("%s declares no return type", sig.Name)
		}
		return sig.Return, nil
	}
	for _, p := range sig.Params {
		if p.Name == checkParam {
			return p.Type, nil
		}
	}
	return shapetypes.Type{}, fmt.Errorf("%s has no parameter %q", sig.Name, checkParam)
}

func report(out shapetypes.Outcome, value runtime.Object) error {
	if out.Pass {
		fmt.Println(green("ok"))
		return nil
	}

	fmt.Println(red("mismatch"))
	switch out.Category {
	case shapetypes.MissingKey:
		fmt.Printf("missing required key %s", out.Key.Inspect())
		if path := out.PathString(); path != "" {
			fmt.Printf(" at %s", path)
		}
		fmt.Println()

	case shapetypes.WrongType:
		fmt.Printf("%s must be of type %s, %s given\n",
			out.PathString(), shapetypes.Stringify(out.Expected), runtime.KindName(out.Actual))

	default:
		fmt.Printf("value must be of type %s, %s given\n",
			shapetypes.Stringify(out.Expected), runtime.KindName(value))
	}
	os.Exit(1)
	return nil
}

func readValue(source string) (runtime.Object, error) {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return runtime.DecodeJSON(data)
}
