package logger

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Logger is a subsystem logger. All log messages are tagged with the
// subsystem tag and dispatched to the owning Backend.
type Logger struct {
	lvl       Level // atomic, use Level()/SetLevel()
	tag       string
	b         *Backend
	writeChan chan logEntry
}

// BackendLogs is the logging backend used to create all subsystem loggers.
var BackendLogs = NewBackend()

var (
	// subsystemLoggers maps each subsystem identifier to its associated
	// logger.
	subsystemLoggers      = make(map[string]*Logger)
	subsystemLoggersMutex sync.Mutex
)

// SubsystemTags is an enum of all subsystem tags.
var SubsystemTags = struct {
	CHAN,
	CNFG,
	UTIL,
	TGCL string
}{
	CHAN: "CHAN",
	CNFG: "CNFG",
	UTIL: "UTIL",
	TGCL: "TGCL",
}

// Get returns a logger of a specific subsystem. Loggers are memoized per
// tag, so all callers asking for the same tag share one logger.
func Get(tag string) (*Logger, bool) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	log, ok := subsystemLoggers[tag]
	if !ok {
		log = BackendLogs.Logger(tag)
		subsystemLoggers[tag] = log
	}
	return log, true
}

// SetLogLevels sets the logging level for all registered subsystems.
func SetLogLevels(level Level) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	for _, log := range subsystemLoggers {
		log.SetLevel(level)
	}
}

// SetLogLevelsString parses s as a log level and sets it for all registered
// subsystems.
func SetLogLevelsString(s string) error {
	level, ok := LevelFromString(s)
	if !ok {
		return errors.Errorf("invalid log level: %s", s)
	}
	SetLogLevels(level)
	return nil
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.b
}

// printf outputs a log message to the writers associated with the backend
// after creating a prefix for the given level and tag according to the
// formatHeader function and formatting the provided arguments using the
// given format specifier.
func (l *Logger) printf(lvl Level, format string, args ...interface{}) {
	if lvl < l.Level() {
		return
	}
	if !l.b.IsRunning() {
		return
	}
	t := time.Now() // get as early as possible

	var buf bytes.Buffer
	formatHeader(&buf, t, lvl.String(), l.tag, l.b.flag)
	fmt.Fprintf(&buf, format, args...)
	buf.WriteString("\n")

	l.writeChan <- logEntry{log: buf.Bytes(), level: lvl}
}

// print is like printf but formats its operands in the manner of fmt.Sprint.
func (l *Logger) print(lvl Level, args ...interface{}) {
	if lvl < l.Level() {
		return
	}
	if !l.b.IsRunning() {
		return
	}
	t := time.Now() // get as early as possible

	var buf bytes.Buffer
	formatHeader(&buf, t, lvl.String(), l.tag, l.b.flag)
	fmt.Fprint(&buf, args...)
	buf.WriteString("\n")

	l.writeChan <- logEntry{log: buf.Bytes(), level: lvl}
}

// calldepth is the call depth of the callsite function relative to the
// caller of the subsystem logger. It is used to recover the filename and
// line number of the logging call if either the short or long file flags
// are specified.
const calldepth = 3

// formatHeader writes a log header in the btclog-lineage format:
//   2006-01-02 15:04:05.000 [LVL] TAG: message
func formatHeader(buf *bytes.Buffer, t time.Time, lvl, tag string, flag uint32) {
	buf.WriteString(t.Format("2006-01-02 15:04:05.000"))
	buf.WriteString(" [")
	buf.WriteString(lvl)
	buf.WriteString("] ")
	buf.WriteString(tag)
	if flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line := callsite(flag)
		fmt.Fprintf(buf, " %s:%d", file, line)
	}
	buf.WriteString(": ")
}

// callsite returns the file name and line of the callsite of the logging
// call.
func callsite(flag uint32) (string, int) {
	_, file, line, ok := runtime.Caller(calldepth)
	if !ok {
		return "<unknown>", 0
	}
	if flag&LogFlagShortFile != 0 {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if os.IsPathSeparator(file[i]) {
				short = file[i+1:]
				break
			}
		}
		file = short
	}
	return file, line
}

// Tracef formats message according to format specifier and writes to
// to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.printf(LevelTrace, format, args...)
}

// Trace formats message using the default formats for its operands
// and writes to log with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.print(LevelTrace, args...)
}

// Debugf formats message according to format specifier and writes to
// log with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}

// Debug formats message using the default formats for its operands
// and writes to log with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.print(LevelDebug, args...)
}

// Infof formats message according to format specifier and writes to
// log with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

// Info formats message using the default formats for its operands
// and writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.print(LevelInfo, args...)
}

// Warnf formats message according to format specifier and writes to
// to log with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

// Warn formats message using the default formats for its operands
// and writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.print(LevelWarn, args...)
}

// Errorf formats message according to format specifier and writes to
// to log with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
}

// Error formats message using the default formats for its operands
// and writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.print(LevelError, args...)
}

// Criticalf formats message according to format specifier and writes to
// log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.printf(LevelCritical, format, args...)
}

// Critical formats message using the default formats for its operands
// and writes to log with LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.print(LevelCritical, args...)
}

// LogAndMeasureExecutionTime logs that funcName started, and returns a
// closure that, when called, logs how long it took.
func LogAndMeasureExecutionTime(log *Logger, funcName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s start", funcName)
	return func() {
		log.Debugf("%s end. Took: %s", funcName, time.Since(start))
	}
}
