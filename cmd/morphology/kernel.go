package main

import (
	"fmt"

	"github.com/example/go-morphology/internal/kernel"
	"github.com/spf13/cobra"
)

var namedKernelFamilies = []string{
	"unity", "gaussian", "dog", "log", "blur", "dob", "comet", "laplacian",
	"sobel", "roberts", "prewitt", "compass", "kirsch",
	"freichen", "diamond", "square", "rectangle", "disk", "plus", "cross",
	"ring", "peak", "edges", "corners", "ridges", "lineends", "linejunctions",
	"convexhull", "skeleton", "chebyshev", "manhattan", "euclidean",
}

func newKernelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Inspect kernel strings and named generators",
	}

	cmd.AddCommand(newKernelShowCmd())
	cmd.AddCommand(newKernelListCmd())

	return cmd
}

func newKernelShowCmd() *cobra.Command {
	var digits int

	cmd := &cobra.Command{
		Use:   "show <kernel-string>",
		Short: "Parse a kernel string and print its diagnostic dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kernel.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), kernel.DumpList(k, digits))
			return nil
		},
	}

	cmd.Flags().IntVar(&digits, "digits", 6, "Decimal precision for the dump")

	return cmd
}

func newKernelListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the named kernel generator families",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range namedKernelFamilies {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	return cmd
}
