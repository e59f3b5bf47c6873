// xunitmerge - merge sharded XUnit XML test reports into one report.
//
// Combines the testsuite rows of every input under a single <testsuites>
// container, sums the aggregate attributes, and writes the result with
// captured-output tags preserved as CDATA.

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/drew/xunitmerge/internal/config"
	"github.com/drew/xunitmerge/internal/merge"
	"github.com/drew/xunitmerge/internal/metrics"
	"github.com/drew/xunitmerge/internal/ui"
)

const version = "1.0.0"

func main() {
	// CLI flags
	var (
		flagOutput    string
		flagConfig    string
		flagSummary   bool
		flagStripANSI bool
		flagNoColor   bool
		flagVerbose   bool
		flagVersion   bool
	)

	flag.StringVar(&flagOutput, "o", "", "Output file (when set, all positional arguments are inputs)")
	flag.StringVar(&flagConfig, "config", "", "Path to config file (default: xunitmerge.toml)")
	flag.BoolVar(&flagSummary, "summary", false, "Print a summary of the merged report")
	flag.BoolVar(&flagStripANSI, "strip-ansi", false, "Strip ANSI escape sequences from captured output")
	flag.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flagVerbose, "verbose", false, "Verbose logging")
	flag.BoolVar(&flagVersion, "version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if flagVersion {
		fmt.Println("xunitmerge " + version)
		return
	}

	inputs, output, err := splitArgs(flag.Args(), flagOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	// Fail on missing inputs up front, before anything is parsed
	for _, path := range inputs {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: input file not found: %s\n", path)
			os.Exit(1)
		}
	}

	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	mergedCfg := config.MergeWithDefaults(cfg)

	tags := mergedCfg.CDATA.Tags
	opts := merge.Options{
		CDATATags:     tags,
		NoDeclaration: mergedCfg.Output.Declaration != nil && !*mergedCfg.Output.Declaration,
	}
	if flagStripANSI || mergedCfg.Transforms.StripANSI {
		opts.Transforms = append(opts.Transforms, merge.StripANSI(tags))
	}

	if flagVerbose {
		fmt.Printf("Merging %d report(s) into %s\n", len(inputs), output)
		for _, path := range inputs {
			fmt.Printf("  %s\n", path)
		}
	}

	if err := merge.MergeFiles(inputs, output, opts); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	if flagSummary {
		stats, err := metrics.Summarize(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: failed to summarize %s: %v\n", output, err)
			os.Exit(1)
		}

		colors := ui.NewColors(!flagNoColor && ui.IsColorEnabled())
		line := fmt.Sprintf("%d tests, %d failures, %d errors, %d skipped (%.3fs)",
			stats.Tests, stats.Failures, stats.Errors, stats.Skipped, stats.Time)
		if stats.OK() {
			fmt.Println(colors.Green("PASS") + " " + line)
		} else {
			fmt.Println(colors.Red("FAIL") + " " + line)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: xunitmerge [flags] input.xml [input2.xml ...] output.xml\n")
	fmt.Fprintf(os.Stderr, "       xunitmerge -o output.xml input.xml [input2.xml ...]\n\n")
	fmt.Fprintf(os.Stderr, "Input arguments may be glob patterns (e.g. 'reports/**/junit-*.xml').\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

// splitArgs resolves the positional arguments into input paths and the
// output path. Without -o, the last positional argument is the output and
// is never glob-expanded.
func splitArgs(args []string, explicitOutput string) ([]string, string, error) {
	if explicitOutput != "" {
		if len(args) < 1 {
			return nil, "", fmt.Errorf("at least one input file is required")
		}
		inputs, err := expandInputs(args)
		if err != nil {
			return nil, "", err
		}
		return inputs, explicitOutput, nil
	}

	if len(args) < 2 {
		return nil, "", fmt.Errorf("at least two file arguments are required (inputs... output)")
	}
	inputs, err := expandInputs(args[:len(args)-1])
	if err != nil {
		return nil, "", err
	}
	return inputs, args[len(args)-1], nil
}

// expandInputs glob-expands each argument. An argument that matches
// nothing is kept verbatim so the missing-file check can name it.
func expandInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %v", arg, err)
		}
		if len(matches) == 0 {
			inputs = append(inputs, arg)
			continue
		}
		sort.Strings(matches)
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}
