// Package engine orchestrates one gate run: optional mirror
// synchronization, then every selected check in sequence, aggregated into
// sinks and an exit code. The engine always completes the run; failures are
// results, not panics.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"relgate/internal/checks"
	"relgate/internal/config"
	"relgate/internal/data"
	"relgate/internal/errs"
	"relgate/internal/fetcher"
	"relgate/internal/output"
	"relgate/internal/project"
	"relgate/internal/syncer"
)

// SyncCheckID is the pseudo check ID the synchronization step reports under,
// so sync outcomes flow through the same sinks as check results.
const SyncCheckID = "metadata-sync"

// Run executes the gate and returns the process exit code:
// 0 when synchronization (if requested) succeeded and every check passed,
// 1 otherwise.
func Run(ctx context.Context, cfg *config.Config, mode config.Mode) int {
	dir, err := filepath.Abs(cfg.Project.Dir)
	if err == nil {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			err = fmt.Errorf("project directory %s does not exist", dir)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	layout := project.NewLayout(dir, cfg.Project.Package, cfg.Project.TestDir)
	projectName := filepath.Base(dir)

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer outMgr.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.Runtime.Timeout)
	defer cancel()

	// Synchronization step first: the consistency check reads the mirror the
	// synchronizer just wrote.
	if mode != config.ModeNoUpdate {
		res := runSync(layout, projectName)
		_ = outMgr.Write(res)
		if !res.Ok() {
			_ = outMgr.Write(output.Event{Type: "run.finished", Project: projectName, ExitCode: 1})
			return 1
		}
		if mode == config.ModeUpdateOnly {
			_ = outMgr.Write(output.Event{Type: "run.finished", Project: projectName})
			return 0
		}
	}

	selected, err := checks.Resolve(cfg.Checks.Selector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := applyCheckOptions(cfg, selected); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	f := fetcher.New(layout, fetcher.Options{
		PythonOverride: cfg.Project.Python,
		TestTimeout:    cfg.Runtime.TestTimeout,
		Offline:        cfg.Checks.Offline,
		Verbose:        cfg.Runtime.Verbose,
	})

	_ = outMgr.Write(output.Event{Type: "run.started", Project: projectName, Checks: len(selected)})

	allPassed := true
	for _, c := range selected {
		res := runCheck(ctx, c, projectName, f)
		_ = outMgr.Write(res)
		if !res.Ok() {
			allPassed = false
		}
	}

	exitCode := 0
	if !allPassed {
		exitCode = 1
	}
	printBanner(cfg, allPassed)
	_ = outMgr.Write(output.Event{Type: "run.finished", Project: projectName, Checks: len(selected), ExitCode: exitCode})
	return exitCode
}

// runSync runs the synchronizer and folds its outcome into a Result.
func runSync(layout project.Layout, projectName string) checks.Result {
	outcome, err := syncer.Sync(layout)
	if err != nil {
		return checks.FailResultWithEvidence(projectName, SyncCheckID,
			fmt.Sprintf("mirror update failed: %v", err),
			map[string]string{"kind": errs.KindOf(err).String()})
	}
	return checks.PassResultWithMessage(projectName, SyncCheckID,
		fmt.Sprintf("updated %s with version %s and %d dependencies",
			filepath.Base(outcome.Path), outcome.Version, outcome.Dependencies))
}

// runCheck fetches the check's declared dependencies, then evaluates it.
// Fetch failures and panics become ERROR results; nothing propagates.
func runCheck(ctx context.Context, c checks.Check, projectName string, f *fetcher.Fetcher) (res checks.Result) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"check": c.ID(), "panic": r}).Debug("check panicked")
			res = checks.ErrorResult(projectName, c.ID(), fmt.Sprintf("check panicked: %v", r))
			res.Evidence = map[string]string{"kind": errs.KindUnexpected.String()}
		}
	}()

	start := time.Now()
	fetched := make(map[data.DependencyKey]any)
	for _, key := range c.Dependencies() {
		val, err := f.Fetch(ctx, key)
		if err != nil {
			res = checks.ErrorResult(projectName, c.ID(), fmt.Sprintf("%s: %v", key, err))
			res.Evidence = map[string]string{"kind": errs.KindOf(err).String()}
			return res
		}
		fetched[key] = val
	}

	res, err := c.Evaluate(ctx, projectName, data.NewMapDataContext(fetched))
	if err != nil {
		res = checks.ErrorResult(projectName, c.ID(), err.Error())
		res.Evidence = map[string]string{"kind": errs.KindOf(err).String()}
	}
	logrus.WithFields(logrus.Fields{
		"check":    c.ID(),
		"status":   res.Status,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("check evaluated")
	return res
}

// applyCheckOptions routes --set assignments and the --expect-version
// shorthand to the matching checks.
func applyCheckOptions(cfg *config.Config, selected []checks.Check) error {
	assignments, err := config.ParseCheckOptionAssignments(cfg.Checks.Set)
	if err != nil {
		return err
	}
	if cfg.Project.ExpectVersion != "" {
		if _, ok := assignments["version-marker"]; !ok {
			assignments["version-marker"] = make(map[string]string)
		}
		if _, ok := assignments["version-marker"]["expect"]; !ok {
			assignments["version-marker"]["expect"] = cfg.Project.ExpectVersion
		}
	}
	if len(assignments) == 0 {
		return nil
	}

	byID := make(map[string]checks.Check, len(selected))
	for _, c := range selected {
		byID[c.ID()] = c
	}

	for checkID, opts := range assignments {
		c, ok := byID[checkID]
		if !ok {
			return fmt.Errorf("unknown check ID %q", checkID)
		}
		cc, ok := c.(checks.ConfigurableCheck)
		if !ok {
			return fmt.Errorf("check %q does not support options", checkID)
		}

		allowed := make(map[string]struct{})
		for _, opt := range cc.Options() {
			allowed[opt.Name] = struct{}{}
		}
		for name := range opts {
			if _, ok := allowed[name]; !ok {
				return fmt.Errorf("unknown option %q for check %q", name, checkID)
			}
		}

		if err := cc.Configure(opts); err != nil {
			return fmt.Errorf("configure check %q: %w", checkID, err)
		}
	}
	return nil
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(os.Stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

// printBanner writes the final pass/fail banner to stdout in text console
// mode. Structured modes get the run.finished event instead.
func printBanner(cfg *config.Config, passed bool) {
	if cfg.Output.NoConsole || cfg.Output.ConsoleFormat != "text" {
		return
	}
	line := "============================================================"
	fmt.Println(line)
	if passed {
		color.New(color.FgGreen, color.Bold).Println("ALL CHECKS PASSED - Ready for release!")
	} else {
		color.New(color.FgRed, color.Bold).Println("SOME CHECKS FAILED - Fix issues before releasing")
	}
	fmt.Println(line)
}
