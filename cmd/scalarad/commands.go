package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/born-ml/scalarad/internal/autodiff/graph"
	"github.com/born-ml/scalarad/internal/autodiff/mono"
	"github.com/born-ml/scalarad/internal/loader"
	"github.com/born-ml/scalarad/internal/parallel"
)

// newRootCmd assembles the command tree writing reports to out.
func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "scalarad",
		Short: "Evaluate scalar expressions and their exact derivatives",
		Long: `scalarad evaluates single-variable chains and multi-variable graphs
and reports their value together with the reverse-mode gradient.`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(
		newVersionCmd(),
		newGraphCmd(),
		newChainCmd(),
		newBatchCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scalarad %s\n", version)
		},
	}
}

func newGraphCmd() *cobra.Command {
	var (
		file   string
		inputs []float64
		seed   float64
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Evaluate a multi-variable graph and its gradient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := loader.Load(file)
			if err != nil {
				return err
			}
			g, err := spec.Graph()
			if err != nil {
				return errors.Wrapf(err, "building graph from %s", file)
			}
			if !cmd.Flags().Changed("inputs") {
				inputs = spec.Inputs
			}
			klog.V(1).Infof("graph: %d nodes, inputs %v, seed %g", g.NumNodes(), inputs, seed)

			value, backward, err := graph.EvaluateWithGradient(g, inputs)
			if err != nil {
				return err
			}
			renderGraph(cmd.OutOrStdout(), g, inputs, value, backward(seed))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "graph description file (YAML or JSON)")
	cmd.Flags().Float64SliceVar(&inputs, "inputs", nil, "comma separated input values, overrides the file")
	cmd.Flags().Float64Var(&seed, "seed", 1, "seed cotangent")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newChainCmd() *cobra.Command {
	var (
		file  string
		names []string
		x     float64
		seed  float64
	)
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Evaluate a single-variable chain and its derivative",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opsSet := cmd.Flags().Changed("ops")
			if file != "" {
				spec, err := loader.Load(file)
				if err != nil {
					return err
				}
				if !opsSet {
					if !spec.HasChain() {
						return errors.Errorf("%s has no chain, pass --ops", file)
					}
					names = spec.Chain
				}
				if !cmd.Flags().Changed("x") && spec.X != nil {
					x = *spec.X
				}
			} else if !opsSet {
				return errors.New("no chain given, pass --ops or -f")
			}
			chain, err := mono.ParseChain(names)
			if err != nil {
				return err
			}

			value, backward := mono.Evaluate(chain, x)
			renderChain(cmd.OutOrStdout(), chain, x, value, backward(seed))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "description file holding a chain (YAML or JSON)")
	cmd.Flags().StringSliceVar(&names, "ops", nil, "comma separated operations, applied left to right (empty for the identity)")
	cmd.Flags().Float64Var(&x, "x", 0, "input value")
	cmd.Flags().Float64Var(&seed, "seed", 1, "seed cotangent")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		file    string
		vectors []string
		seed    float64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate a graph for several input vectors concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := loader.Load(file)
			if err != nil {
				return err
			}
			g, err := spec.Graph()
			if err != nil {
				return errors.Wrapf(err, "building graph from %s", file)
			}
			batch, err := parseVectors(vectors)
			if err != nil {
				return err
			}

			cfg := parallel.DefaultConfig()
			if workers > 0 {
				cfg.NumWorkers = workers
				cfg.Enabled = workers > 1
			}
			results, err := graph.EvaluateBatch(context.Background(), g, batch, seed, cfg)
			if err != nil {
				return err
			}
			renderBatch(cmd.OutOrStdout(), batch, results)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "graph description file (YAML or JSON)")
	cmd.Flags().StringArrayVar(&vectors, "inputs", nil, "comma separated input vector, repeat for each batch item")
	cmd.Flags().Float64Var(&seed, "seed", 1, "seed cotangent")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 uses one per CPU)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// parseVectors parses "a,b,c" strings into input vectors.
func parseVectors(vectors []string) ([][]float64, error) {
	if len(vectors) == 0 {
		return nil, errors.New("at least one --inputs vector is required")
	}
	batch := make([][]float64, len(vectors))
	for i, v := range vectors {
		fields := strings.Split(v, ",")
		vec := make([]float64, 0, len(fields))
		for _, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			val, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "inputs vector %d", i)
			}
			vec = append(vec, val)
		}
		batch[i] = vec
	}
	return batch, nil
}
