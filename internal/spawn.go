package internal

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"

	uerror "stnb.cc/smam/util/error"
)

// SpawnDirective is a fully resolved launch invocation bound to one
// profile directory.
type SpawnDirective struct {
	Command    string
	Args       []string
	ProfileDir string
}

func directiveFor(command string, profileDir string) SpawnDirective {
	return SpawnDirective{
		Command:    command,
		Args:       []string{"--user-data-dir=" + profileDir},
		ProfileDir: profileDir,
	}
}

func (directive SpawnDirective) String() string {
	return strings.Join(append([]string{directive.Command}, directive.Args...), " ")
}

// Spawn starts the directive's command in its own session, detached
// from our terminal and process group. The child is released, never
// waited on.
func Spawn(directive SpawnDirective) error {
	cmd := exec.Command(directive.Command, directive.Args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return uerror.StackTracef("Failed to start %s: %w", directive.Command, err)
	}
	return uerror.WithStackTrace(cmd.Process.Release())
}

// profileInUse reports whether some running process references the
// profile directory on its command line, and by which PID. The scan
// is best effort, an unreadable process table reports "not in use".
func profileInUse(profileDir string) (bool, int32) {
	references := []string{profileDir}
	if resolved, err := filepath.EvalSymlinks(profileDir); err == nil && resolved != profileDir {
		references = append(references, resolved)
	}

	processes, err := process.Processes()
	if err != nil {
		return false, 0
	}
	ownPid := int32(os.Getpid())
	for _, proc := range processes {
		if proc.Pid == ownPid {
			continue
		}
		cmdline, err := proc.Cmdline()
		if err != nil {
			continue
		}
		for _, reference := range references {
			if cmdlineReferences(cmdline, reference) {
				return true, proc.Pid
			}
		}
	}
	return false, 0
}

// cmdlineReferences reports whether a command line contains the
// profile directory as a whole path component. Plain substring
// matching would report "work" as busy while "work-2" runs.
func cmdlineReferences(cmdline string, profileDir string) bool {
	for rest := cmdline; ; {
		index := strings.Index(rest, profileDir)
		if index < 0 {
			return false
		}
		rest = rest[index+len(profileDir):]
		if rest == "" {
			return true
		}
		switch rest[0] {
		case ' ', '"', '\'', '/':
			return true
		}
	}
}
