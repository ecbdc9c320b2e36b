// Package main provides the entry point for o3sim, a cycle-accurate
// model of a single-issue out-of-order RV32 core.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/o3sim/loader"
	"github.com/sarchlab/o3sim/mem"
	"github.com/sarchlab/o3sim/timing/cache"
	"github.com/sarchlab/o3sim/timing/config"
	"github.com/sarchlab/o3sim/timing/core"
)

var (
	configPath = flag.String("config", "", "Path to core configuration JSON file")
	imageBase  = flag.Uint("image-base", 0, "Load the program as a flat image at this address instead of as ELF")
	image      = flag.Bool("image", false, "Treat the program as a flat image")
	useCaches  = flag.Bool("caches", false, "Model L1 instruction and data caches")
	maxCycles  = flag.Uint64("max-cycles", 0, "Stop after this many cycles (0 = run to halt)")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: o3sim [options] <program.elf>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	var prog *loader.Program
	var err error
	if *image {
		prog, err = loader.LoadImage(programPath, uint32(*imageBase))
	} else {
		prog, err = loader.Load(programPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%X\n", prog.EntryPoint)
		fmt.Printf("Segments: %d\n", len(prog.Segments))
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	memory := mem.NewMemory()
	prog.LoadInto(memory)

	opts := []core.Option{core.WithConfig(cfg)}
	var icache, dcache *cache.Cache
	if *useCaches {
		icache = cache.New(cache.DefaultL1IConfig(), cache.NewMemoryFill(memory))
		dcache = cache.New(cache.DefaultL1DConfig(), cache.NewMemoryFill(memory))
		opts = append(opts, core.WithICache(icache), core.WithDCache(dcache))
	}

	c := core.New(memory, opts...)
	c.SetPC(prog.EntryPoint)

	var exitCode int64
	if *maxCycles > 0 {
		if running := c.RunCycles(*maxCycles); running {
			fmt.Fprintf(os.Stderr, "Cycle limit reached before halt\n")
			printReport(c, icache, dcache, programPath)
			os.Exit(2)
		}
		exitCode = c.ExitCode()
	} else {
		exitCode = c.Run()
	}

	printReport(c, icache, dcache, programPath)
	os.Exit(int(exitCode))
}

func printReport(c *core.Core, icache, dcache *cache.Cache, programPath string) {
	stats := c.Stats()

	fmt.Printf("\n")
	fmt.Printf("Program: %s\n", programPath)
	fmt.Printf("Exit code: %d\n", c.ExitCode())
	fmt.Printf("Total Instructions: %d\n", stats.Instructions)
	fmt.Printf("Total Cycles: %d\n", stats.Cycles)
	fmt.Printf("IPC: %.3f\n", stats.IPC())
	fmt.Printf("CPI: %.3f\n", stats.CPI())
	fmt.Printf("\n")
	fmt.Printf("Backend Events:\n")
	fmt.Printf("  Rename stalls:   %d\n", stats.RenameStalls)
	fmt.Printf("  Dispatch stalls: %d\n", stats.DispatchStalls)
	fmt.Printf("  Bus conflicts:   %d\n", stats.BusConflicts)
	fmt.Printf("  Branches:        %d\n", stats.Branches)

	bp := c.PredictorStats()
	if bp.Predictions > 0 {
		fmt.Printf("\n")
		fmt.Printf("Branch Predictor:\n")
		fmt.Printf("  Predictions: %d\n", bp.Predictions)
		fmt.Printf("  Accuracy:    %.1f%%\n", bp.Accuracy())
		fmt.Printf("  BTB hit rate: %.1f%%\n", bp.BTBHitRate())
	}

	if icache != nil {
		is := icache.Stats()
		ds := dcache.Stats()
		fmt.Printf("\n")
		fmt.Printf("Caches:\n")
		fmt.Printf("  L1I: %d reads, %.1f%% hits\n", is.Reads, is.HitRate())
		fmt.Printf("  L1D: %d reads, %.1f%% hits\n", ds.Reads, ds.HitRate())
	}
}
