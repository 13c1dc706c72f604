package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/funvibe/shapetypes/internal/registry"
	"github.com/funvibe/shapetypes/internal/typesystem"
)

var signaturesDB string

var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "Manage declared function signatures",
}

var signaturesCompileCmd = &cobra.Command{
	Use:   "compile <signatures.yaml>",
	Short: "Compile a signatures file and cache the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignaturesCompile(args[0])
	},
}

var signaturesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached signatures in canonical form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignaturesList()
	},
}

func init() {
	signaturesCmd.PersistentFlags().StringVar(&signaturesDB, "db", "signatures.db", "signature cache path")
	signaturesCmd.AddCommand(signaturesCompileCmd)
	signaturesCmd.AddCommand(signaturesListCmd)
	rootCmd.AddCommand(signaturesCmd)
}

func runSignaturesCompile(path string) error {
	logger := newLogger()

	cfg, err := registry.LoadConfig(path)
	if err != nil {
		return err
	}

	reg := registry.New(logger)
	if err := reg.Load(cfg); err != nil {
		return err
	}

	store, err := registry.OpenStore(signaturesDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(reg); err != nil {
		return err
	}
	fmt.Printf("%s %d signatures cached in %s\n", green("ok"), len(reg.Names()), signaturesDB)
	return nil
}

func runSignaturesList() error {
	store, err := registry.OpenStore(signaturesDB)
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

	for _, name := range reg.Names() {
		sig, _ := reg.Lookup(name)
		fmt.Println(formatSignature(sig))
	}
	return nil
}

func formatSignature(sig *registry.Signature) string {
	var out strings.Builder
	out.WriteString(sig.Name)
	out.WriteByte('(')
	for i, p := range sig.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(typesystem.Stringify(p.Type))
		out.WriteString(" $")
		out.WriteString(p.Name)
		if p.Optional {
			out.WriteString(" = ?")
		}
	}
	out.WriteByte(')')
	if sig.HasReturn {
		out.WriteString(": ")
		out.WriteString(typesystem.Stringify(sig.Return))
	}
	return out.String()
}
