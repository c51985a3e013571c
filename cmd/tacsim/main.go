// Command tacsim is a headless CLI harness for the tactical simulation
// engine: it seeds a run, drives it for a fixed number of turns issuing WAIT
// each player turn (a scripted replay driver, not an interactive session),
// and reports the resulting fingerprint plus optional JSON/SVG debug
// exports. Flag layout and -version/-help/-verbose conventions follow the
// same cmd/dungeongen/main.go style.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/content"
	"github.com/dshills/tacsim/pkg/fingerprint"
	"github.com/dshills/tacsim/pkg/reducer"
	"github.com/dshills/tacsim/pkg/snapshot"
)

const version = "0.1.0"

var (
	configPath = flag.String("config", "", "Path to a YAML run config (seed + loadout); overrides -seed")
	seedFlag  = flag.String("seed", "tacsim-default-seed", "Deterministic RNG seed for the run")
	turns     = flag.Int("turns", 20, "Number of player turns to auto-play (WAIT each turn)")
	outputDir = flag.String("output", ".", "Output directory for generated files")
	format    = flag.String("format", "json", "Export format: json, svg, or all")
	checkPath = flag.String("check", "", "Path to a baseline snapshot; compare the final fingerprint against it")
	verbose   = flag.Bool("verbose", false, "Enable verbose output")
	versionF  = flag.Bool("version", false, "Print version and exit")
	help      = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("tacsim version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	seed := *seedFlag
	loadout := reducer.DefaultLoadout
	if *configPath != "" {
		cfg, err := reducer.LoadRunConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		seed = cfg.Seed
		loadout = cfg.Loadout
		if *verbose {
			fmt.Printf("Loaded run config from %s (seed=%q, archetype=%q)\n", *configPath, seed, loadout.ArchetypeID)
		}
	}

	if *verbose {
		fmt.Printf("Seeding run with %q, auto-playing %d turns\n", seed, *turns)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	reg := content.Bootstrap()
	rd := reducer.New(reg, 0, 0, 12, 12)

	start := time.Now()
	state := reducer.GenerateInitialState(1, seed, seed, nil, loadout, reg)
	state = rd.Dispatch(state, reducer.Action{Type: "START_RUN", Payload: reducer.StartRunPayload{Seed: seed, Loadout: loadout}})

	for i := 0; i < *turns; i++ {
		if state.GameStatus != actorstate.StatusPlaying {
			break
		}
		if len(state.PendingFrames) > 0 {
			state = rd.Dispatch(state, reducer.Action{Type: "RESOLVE_PENDING"})
			continue
		}
		state = rd.Dispatch(state, reducer.Action{Type: "WAIT"})
	}
	elapsed := time.Since(start)

	fp, err := fingerprint.FromState(state)
	if err != nil {
		return fmt.Errorf("fingerprint failed: %w", err)
	}

	if *verbose {
		fmt.Printf("Ran %d turns in %v\n", *turns, elapsed)
		fmt.Printf("Final status: %s, floor %d, turn %d, kills %d\n", state.GameStatus, state.Floor, state.TurnNumber, state.Kills)
	}

	baseName := fmt.Sprintf("tacsim_%s", seed)

	if *format == "json" || *format == "all" {
		if err := exportJSON(state, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(state, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("fingerprint: %s\n", fp)

	if *checkPath != "" {
		return checkDrift(fp)
	}
	return nil
}

func exportJSON(state *actorstate.GameState, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}
	if err := snapshot.SaveToFile(state, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

func exportSVG(state *actorstate.GameState, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}
	if err := snapshot.SaveSVGToFile(state, filename); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}
	return nil
}

// checkDrift compares fp against a previously saved baseline snapshot's own
// fingerprint: a golden-fingerprint replay check.
func checkDrift(fp string) error {
	baseline, err := snapshot.LoadFromFile(*checkPath)
	if err != nil {
		return fmt.Errorf("failed to load baseline %s: %w", *checkPath, err)
	}
	baseFP, err := fingerprint.FromState(baseline)
	if err != nil {
		return fmt.Errorf("failed to fingerprint baseline: %w", err)
	}
	if baseFP != fp {
		fmt.Fprintf(os.Stderr, "DRIFT: baseline fingerprint %s != run fingerprint %s\n", baseFP, fp)
		os.Exit(1)
	}
	fmt.Println("OK: fingerprint matches baseline")
	return nil
}

func printHelp() {
	fmt.Printf("tacsim version %s\n\n", version)
	fmt.Println("A headless harness for the deterministic tactical simulation engine.")
	fmt.Println("\nUsage:")
	fmt.Println("  tacsim [options]")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to a YAML run config (seed + loadout); overrides -seed")
	fmt.Println("  -seed string")
	fmt.Println("        Deterministic RNG seed for the run (default: tacsim-default-seed)")
	fmt.Println("  -turns int")
	fmt.Println("        Number of player turns to auto-play, WAITing each turn (default: 20)")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, or all (default: json)")
	fmt.Println("  -check string")
	fmt.Println("        Path to a baseline snapshot; compares the final fingerprint against it")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  tacsim -seed run-001 -turns 40 -verbose")
	fmt.Println("  tacsim -seed run-001 -check baseline.json")
}
