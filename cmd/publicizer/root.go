package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/publicizer/cache"
	"github.com/viant/publicizer/config"
	"github.com/viant/publicizer/logging"
	"github.com/viant/publicizer/task"
	"github.com/viant/publicizer/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "publicizer",
		Short: "Publicize assembly members present in a mask assembly",
		Long: `Rewrites accessibility of types, methods and fields of a target assembly to public,
limited to declarations that also exist in the mask assembly. Original accessibility is
recorded on every rewritten declaration. Unchanged inputs are detected by fingerprint and
skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPublicizeCmd())
	root.AddCommand(newFingerprintCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newPublicizeCmd() *cobra.Command {
	var (
		configPath string
		targetPath string
		outputPath string
		maskURL    string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "publicize",
		Short: "Publicize target assembly into the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if maskURL != "" {
				cfg.MaskLocation = maskURL
			}
			if cfg.MaskLocation == "" {
				return errors.New("mask location was empty, use --mask or maskLocation")
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}
			cfg.Logging.Output = cmd.ErrOrStderr()
			logger := logging.NewWithComponent(cfg.Logging, "publicizer")

			request := &task.Request{
				IntermediateOutputPath: outputPath,
				PackageReferences: []*task.Item{
					task.NewItem(cfg.PackageName, map[string]string{cfg.AssemblyMetadata: targetPath}),
				},
			}
			result, err := task.New(cfg, task.WithLogger(logger)).Execute(context.Background(), request)
			if err != nil {
				return err
			}
			if !result.Succeeded {
				return errors.Join(result.Errors...)
			}
			if result.Output != nil {
				fmt.Fprintln(cmd.OutOrStdout(), result.Output.Identity)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (yaml or toml)")
	cmd.Flags().StringVarP(&targetPath, "target", "t", "", "Target assembly location")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Intermediate output directory")
	cmd.Flags().StringVarP(&maskURL, "mask", "m", "", "Mask assembly location")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <mask> <target>",
		Short: "Print content fingerprint of mask and target assemblies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			fs := afs.New()
			maskBytes, err := fs.DownloadWithURL(ctx, args[0])
			if err != nil {
				return err
			}
			targetBytes, err := fs.DownloadWithURL(ctx, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Fingerprint(version.Informational(), maskBytes, targetBytes))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("publicizer version %s\n", version.Informational())
		},
	}
}
