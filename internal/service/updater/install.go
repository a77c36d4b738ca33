package updater

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"
	"github.com/mitchellh/go-ps"

	"github.com/oshokin/maple/internal/domain/release"
	"github.com/oshokin/maple/internal/logger"
)

// installDirName is the only directory name maple replaces itself in.
const installDirName = "bin"

// resolveTarget returns the path of the binary to replace, <dir of executable>/<target filename>.
// The executable must live in a directory named bin.
func resolveTarget(ctx context.Context, executable func() (string, error), platform Platform) (string, error) {
	exePath, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate current executable: %v: %w", err, release.ErrInstallLocation)
	}

	if resolved, evalErr := filepath.EvalSymlinks(exePath); evalErr == nil {
		exePath = resolved
	} else {
		logger.DebugKV(ctx, "Using unresolved executable path", "path", exePath, "error", evalErr)
	}

	binDir := filepath.Dir(exePath)
	if filepath.Base(binDir) != installDirName {
		return "", fmt.Errorf("current executable %s has to be under a %s directory: %w",
			exePath, installDirName, release.ErrInstallLocation)
	}

	return filepath.Join(binDir, platform.TargetFilename()), nil
}

// checkPermissions verifies a file can be created next to target without touching target itself.
func checkPermissions(target string) error {
	options := &goupdate.Options{
		TargetPath: target,
		TargetMode: DefaultFileMode,
	}

	if err := options.CheckPermissions(); err != nil {
		return fmt.Errorf("%s is not writable: %v: %w", filepath.Dir(target), err, release.ErrIO)
	}

	return nil
}

// reportRunningInstances warns about other processes still executing the old binary.
// They are unaffected by the rename and pick up the new build on their next start.
func reportRunningInstances(ctx context.Context, executableName string) {
	count, err := countOtherProcesses(executableName)
	if err != nil {
		logger.DebugKV(ctx, "Unable to list processes", "error", err)
		return
	}

	if count > 0 {
		logger.WarnKV(ctx, "Running instances keep the previous build until restarted",
			"executable", executableName, "count", count)
	}
}

// countOtherProcesses counts processes named executableName, excluding this one.
func countOtherProcesses(executableName string) (int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return 0, err
	}

	thisProcessID := os.Getpid()
	count := 0

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == executableName {
			count++
		}
	}

	return count, nil
}
