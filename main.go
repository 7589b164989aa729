// ════════════════════════════════════════════════════════════════════════════════════════════════
// Atomic Runtime Soak Harness - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Interrupt-Masked Atomic Runtime
// Component: Main Entry Point & Suite Orchestration
//
// Description:
//   Orchestrates soak runs of the atomic entry points against the emulated
//   single-core target. Phased flow: load target profiles → open the result
//   store → pin the core goroutine → run the scenario suite per profile →
//   record rows. Watch mode re-runs the suite whenever the profile file
//   changes, for bring-up iteration.
//
//   The runnable logic lives in main/harness; this file only wires flags,
//   signals, and the process exit code.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"main/control"
	"main/cpu"
	"main/debug"
	"main/harness"
	"main/utils"
)

func main() {
	profilePath := flag.String("profiles", "targets.json", "target profile file")
	dbPath := flag.String("db", "soak_results.db", "result database")
	watch := flag.Bool("watch", false, "re-run the suite when the profile file changes")
	flag.Parse()

	// PHASE 0: Result store
	db, err := harness.OpenResultDB(*dbPath)
	if err != nil {
		debug.DropError("DB_OPEN", err)
		os.Exit(1)
	}
	defer db.Close()

	setupSignalHandling()

	// PHASE 1: The core goroutine is this one; lock it so affinity sticks.
	runtime.LockOSThread()

	if exit := runOnce(*profilePath, db); exit != 0 && !*watch {
		os.Exit(exit)
	}

	// PHASE 2: Optional watch loop — re-run on profile edits until stopped.
	if *watch {
		debug.DropMessage("WATCH", "watching "+*profilePath)
		if err := harness.WatchProfiles(*profilePath, func() {
			control.ClearStop()
			runOnce(*profilePath, db)
		}); err != nil {
			debug.DropError("WATCH", err)
			os.Exit(1)
		}
	}
}

// runOnce loads profiles and drives the suite for each one, returning a
// process exit code (non-zero when any scenario failed).
func runOnce(profilePath string, db *sql.DB) int {
	profiles, err := harness.LoadProfiles(profilePath)
	if err != nil {
		debug.DropError("PROFILES", err)
		return 1
	}
	debug.DropMessage("INIT", utils.Itoa(len(profiles))+" profile(s) loaded")

	exit := 0
	for _, p := range profiles {
		if control.Stopping() {
			break
		}
		if !harness.MatchesTarget(p) {
			debug.DropMessage("SKIP", p.Name+": profile bus width "+
				utils.Itoa(p.BusWordBytes)+"B does not match the compiled target model")
			continue
		}
		cpu.PinThread(p.Core)
		started := time.Now()
		debug.DropMessage("RUN", p.Name+" iterations="+utils.Itoa(p.Iterations))
		for _, r := range harness.RunSuite(p) {
			if r.Failures > 0 {
				exit = 1
			}
			if err := harness.InsertResult(db, started, r); err != nil {
				debug.DropError("DB_INSERT", err)
			}
		}
	}
	debug.DropMessage("DONE", "activity="+utils.Itoa(int(control.ActivityCount())))
	return exit
}

// setupSignalHandling converts SIGINT/SIGTERM into a stop request so the
// scenario loop unwinds at an iteration boundary and rows already earned
// still land in the store.
func setupSignalHandling() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		debug.DropMessage("SIGNAL", "stop requested")
		control.RequestStop()
	}()
}
