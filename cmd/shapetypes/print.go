package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/shapetypes/internal/introspection"
	"github.com/funvibe/shapetypes/pkg/shapetypes"
)

var printDetail bool

var printCmd = &cobra.Command{
	Use:   "print <type-expr>",
	Short: "Print the canonical form of a type expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrint(args[0])
	},
}

func init() {
	printCmd.Flags().BoolVar(&printDetail, "detail", false, "also print structure details")
	rootCmd.AddCommand(printCmd)
}

func runPrint(expr string) error {
	tv, err := shapetypes.CompileString(expr, false)
	if err != nil {
		return err
	}
	defer shapetypes.Release(tv)

	fmt.Println(shapetypes.Stringify(tv))
	if !printDetail {
		return nil
	}

	arr, shape := introspection.Wrap(tv)
	switch {
	case arr != nil:
		fmt.Printf("kind:    array-of\n")
		fmt.Printf("depth:   %d\n", arr.Depth())
		fmt.Printf("element: %s\n", shapetypes.Stringify(arr.ElementType()))
		fmt.Printf("nullable: %t\n", arr.AllowsNull())

	case shape != nil:
		fmt.Printf("kind:    shape\n")
		fmt.Printf("keys:    %d\n", shape.ElementCount())
		for _, e := range shape.Elements() {
			marker := ""
			if e.IsOptional() {
				marker = "?"
			}
			fmt.Printf("  %s%s: %s\n", e.Name(), marker, shapetypes.Stringify(e.Type()))
		}
		fmt.Printf("nullable: %t\n", shape.AllowsNull())

	default:
		fmt.Printf("kind:    plain\n")
	}
	return nil
}
