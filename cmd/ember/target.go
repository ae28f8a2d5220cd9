package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ember/internal/abi"
	"ember/internal/export"
	"ember/internal/target"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Inspect and export resolved target ABI facts",
}

var targetInfoCmd = &cobra.Command{
	Use:   "info [triple]",
	Short: "Resolve a target triple and print its ABI facts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTargetInfo,
}

var targetExportCmd = &cobra.Command{
	Use:   "export [triples...]",
	Short: "Write machine-description snapshots for one or more targets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTargetExport,
}

func init() {
	targetInfoCmd.Flags().String("cpu", "", "cpu feature tier override (sse|sse2|sse4.1|avx|avx2|avx512)")
	targetExportCmd.Flags().String("out", "machdesc", "output directory for snapshots")
	targetExportCmd.Flags().Int("jobs", 0, "parallel export workers (0 = one per cpu)")
	targetCmd.AddCommand(targetInfoCmd)
	targetCmd.AddCommand(targetExportCmd)
}

func runTargetInfo(cmd *cobra.Command, args []string) error {
	desc, err := descriptionFromArgs(cmd, args)
	if err != nil {
		return err
	}
	facts := export.ResolveDescription(desc)

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		header := fmt.Sprintf("target %s", desc.Triple)
		if useColor(cmd, os.Stdout) {
			header = color.New(color.FgCyan, color.Bold).Sprint(header)
		}
		fmt.Fprintln(cmd.OutOrStdout(), header)
	}
	renderFactsTable(cmd.OutOrStdout(), facts, useColor(cmd, os.Stdout))
	return nil
}

func runTargetExport(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	paths, err := export.ExportAll(cmd.Context(), out, args, jobs)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	}
	return nil
}

// descriptionFromArgs resolves the triple argument, falling back to the
// ember.toml [target] table when no argument is given.
func descriptionFromArgs(cmd *cobra.Command, args []string) (target.Description, error) {
	cpuFlag, _ := cmd.Flags().GetString("cpu")

	if len(args) == 1 {
		desc, err := target.ParseTriple(args[0])
		if err != nil {
			return target.Description{}, err
		}
		return applyCPUFlag(desc, cpuFlag)
	}

	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return target.Description{}, err
	}
	if !ok {
		return target.Description{}, fmt.Errorf("%s", noEmberTomlMessage)
	}
	desc, err := resolveDescription(manifest.Config.Target)
	if err != nil {
		return target.Description{}, fmt.Errorf("%s: %w", manifest.Path, err)
	}
	return applyCPUFlag(desc, cpuFlag)
}

func applyCPUFlag(desc target.Description, cpuFlag string) (target.Description, error) {
	if strings.TrimSpace(cpuFlag) == "" {
		return desc, nil
	}
	cpu, err := target.ParseFeature(cpuFlag)
	if err != nil {
		return target.Description{}, err
	}
	desc.CPU = cpu
	return desc, nil
}

func factRows(f *abi.Facts) [][2]string {
	bitness := "32-bit"
	if f.Desc.Is64bit {
		bitness = "64-bit"
	}
	rows := [][2]string{
		{"os", f.Desc.OS.String()},
		{"bitness", bitness},
		{"cpu", f.Desc.CPU.String()},
		{"pointer size", fmt.Sprintf("%d", f.PtrSize)},
		{"classinfo size", fmt.Sprintf("%d", f.ClassInfoSize)},
		{"extended float", fmt.Sprintf("size %d, pad %d, align %d", f.ExtendedFloatSize, f.ExtendedFloatPad, f.ExtendedFloatAlign)},
		{"max static data", fmt.Sprintf("%d", f.MaxStaticDataSize)},
		{"C long size", fmt.Sprintf("%d", f.C.LongSize)},
		{"C long double size", fmt.Sprintf("%d", f.C.LongDoubleSize)},
		{"critical section size", fmt.Sprintf("%d", f.C.CriticalSectionSize)},
		{"C++ reverse overloads", fmt.Sprintf("%v", f.Cpp.ReverseOverloadOrder)},
		{"C++ exception interop", fmt.Sprintf("%v", f.Cpp.ExceptionInterop)},
		{"C++ two dtors in vtable", fmt.Sprintf("%v", f.Cpp.TwoDtorInVtable)},
		{"Objective-C interop", fmt.Sprintf("%v", f.ObjC.Interop)},
		{"system linkage", f.SystemLinkage().String()},
	}
	for _, key := range abi.TargetInfoKeys() {
		if info, ok := f.GetTargetInfo(key); ok {
			rows = append(rows, [2]string{key, info.Text()})
		}
	}
	return rows
}
