package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"
)

type LogLevel int

const (
	LOGDEBUG LogLevel = iota
	LOGINFO
	LOGWARN
	LOGERROR
)

var (
	logLevel  = LOGINFO
	logOutput io.Writer = os.Stderr
	logFile   *os.File
)

// SetLevel controls the minimum level written to the log output.
func SetLevel(level LogLevel) {
	logLevel = level
}

// SetOutput redirects all log output to the named file, appending.
func SetOutput(path string) {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger.SetOutput:", err)
		return
	}
	logFile = file
	logOutput = file
}

func Debug(ctx context.Context, args ...any) {
	if logLevel <= LOGDEBUG {
		writeLog(ctx, "DEBUG", args...)
	}
}

func Info(ctx context.Context, args ...any) {
	if logLevel <= LOGINFO {
		writeLog(ctx, "INFO", args...)
	}
}

func Warn(ctx context.Context, args ...any) {
	if logLevel <= LOGWARN {
		writeLog(ctx, "WARN", args...)
	}
}

func writeLog(ctx context.Context, level string, args ...any) {
	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(level)
	for _, arg := range args {
		sb.WriteString(" ")
		sb.WriteString(fmt.Sprint(arg))
	}
	fmt.Fprintln(logOutput, sb.String())
}

// Error records an error with its source location and returns a Status
// carrying the code and message. It is the normal way a fallible
// function reports failure.
func Error(ctx context.Context, code int, err error, messages ...any) *Status {
	status := newStatus(ctx, code, err, messages...)
	fmt.Fprintln(logOutput, status.String())
	return status
}

// ErrorNoErr is Error for conditions that have no underlying error value.
func ErrorNoErr(ctx context.Context, code int, messages ...any) *Status {
	return Error(ctx, code, nil, messages...)
}

// ExecError filters stderr output of a subprocess. Progress and warning
// chatter returns nil; genuine errors return a Status.
func ExecError(ctx context.Context, code int, line string) *Status {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "warning") ||
		strings.Contains(lower, "it/s") ||
		strings.Contains(lower, "s/it") ||
		strings.Contains(lower, "%|") ||
		strings.HasPrefix(lower, "downloading") {
		Debug(ctx, "exec stderr:", line)
		return nil
	}
	return ErrorNoErr(ctx, code, line)
}

func newStatus(ctx context.Context, code int, err error, messages ...any) *Status {
	var s Status
	s.Status = code
	s.Err = err
	var parts []string
	for _, msg := range messages {
		parts = append(parts, fmt.Sprint(msg))
	}
	s.Message = strings.Join(parts, " ")
	_, file, line, ok := runtime.Caller(2)
	if ok {
		s.Trace = fmt.Sprintf("%s:%d", file, line)
	}
	return &s
}
