package main

import (
	"fmt"
	"os"

	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/kernel"
	"github.com/example/go-morphology/internal/morphology"
	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var (
		in         string
		out        string
		methodName string
		kernelStr  string
		maskStr    string
		composeStr string
		bias       float64
		iterations int
		showKernel bool
		showDigits int
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a morphology method to an image file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			method, err := morphology.ParseMethodName(methodName)
			if err != nil {
				return err
			}
			kernels, err := kernel.Parse(kernelStr)
			if err != nil {
				return fmt.Errorf("parse kernel: %w", err)
			}
			mask, err := image.ParseMask(maskStr)
			if err != nil {
				return err
			}

			var composePtr *morphology.ComposeKind
			if compose, set, err := morphology.ParseComposeName(composeStr); err != nil {
				return err
			} else if set {
				composePtr = &compose
			}

			if showKernel || cfg.Morphology.ShowKernel {
				digits := showDigits
				if digits == 0 {
					digits = cfg.Morphology.ShowKernelDigits
				}
				fmt.Fprint(cmd.OutOrStdout(), kernel.DumpList(kernels, digits))
			}

			f, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			src, err := image.Decode(f)
			if err != nil {
				return fmt.Errorf("decode input: %w", err)
			}

			morphology.SetWorkers(cfg.Runtime.Workers)

			result, changed, err := morphology.Run(src, morphology.Options{
				Mask:    mask,
				Method:  method,
				N:       iterations,
				Kernels: kernels,
				Compose: composePtr,
				Bias:    bias,
			})
			if err != nil {
				return fmt.Errorf("apply: %w", err)
			}

			outFile, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer outFile.Close()

			format := image.EncodeFormat(out)
			if err := image.Encode(outFile, result, format); err != nil {
				return fmt.Errorf("encode output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d pixels changed\n", changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Input image path (required)")
	cmd.Flags().StringVar(&out, "out", "", "Output image path (required)")
	cmd.Flags().StringVar(&methodName, "method", "convolve", "Morphology method to apply")
	cmd.Flags().StringVar(&kernelStr, "kernel", "unity:1", "Kernel string (named, user array, or legacy odd-square)")
	cmd.Flags().StringVar(&maskStr, "mask", "all", "Channel mask: comma-separated subset of red,green,blue,opacity,auxiliary,sync or 'all'")
	cmd.Flags().StringVar(&composeStr, "compose", "", "Multi-kernel fold operator override: none|union|intersect")
	cmd.Flags().Float64Var(&bias, "bias", 0, "Convolution bias added to every channel result")
	cmd.Flags().IntVar(&iterations, "iterations", 1, "Iteration count N; negative means unbounded")
	cmd.Flags().BoolVar(&showKernel, "show-kernel", false, "Print the showkernel diagnostic dump before applying")
	cmd.Flags().IntVar(&showDigits, "show-kernel-digits", 0, "Decimal precision override for the showkernel dump")

	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
