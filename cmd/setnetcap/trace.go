package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
)

const traceEnv = "SETNETCAP_TRACE"

// traceGate must exist for tracing to be enabled.  Only root can create it,
// so an unprivileged caller cannot make the setuid program chatty.
var traceGate = "/.trace"

var tracing bool

var log = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.WarnLevel,
}

// setTrace attempts to set tracing on.  If the gate file does not exist,
// it fails and returns false.  Otherwise it sets tracing on and returns true.
func setTrace() bool {
	if _, err := os.Stat(traceGate); err != nil {
		return false
	}
	tracing = true
	log.SetLevel(logrus.DebugLevel)
	return true
}

func trace(s string, args ...interface{}) {
	if tracing {
		pc := make([]uintptr, 10) // at least 1 entry needed
		runtime.Callers(2, pc)
		f := runtime.FuncForPC(pc[0])
		file, line := f.FileLine(pc[0])
		log.WithField("caller", fmt.Sprintf("%s:%d %s", file, line, f.Name())).Debugf(s, args...)
	}
}
