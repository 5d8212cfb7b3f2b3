// MIT License
//
// Copyright (c) 2025 vl1-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/log/logger.go
package logger

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel defines the severity level of a log message.
type LogLevel int

// Log levels, lowest to highest severity.
const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// levelNames associates LogLevel constants with string labels.
var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// currentLevel holds the minimum log level to output.
var currentLevel = INFO

// buffer holds the in-memory copy of everything logged.
var buffer = &LogBuffer{}

// mu protects the log output to avoid interleaving log messages.
var mu sync.Mutex

// loggerOut writes every log line both to stdout and the capture buffer.
var loggerOut io.Writer = io.MultiWriter(os.Stdout, buffer)

// LogBuffer is a thread-safe bytes.Buffer that keeps logs in memory so
// they can be inspected after the fact.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer for LogBuffer.
func (l *LogBuffer) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

// String returns the current contents of the buffer.
func (l *LogBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// SetLevel sets the global logging level. Messages below it are dropped.
func SetLevel(lvl LogLevel) {
	currentLevel = lvl
}

// Init routes the standard log package through this logger so that
// packages using log.Printf end up in the same stream and buffer.
func Init() {
	log.SetFlags(0)
	log.SetOutput(&stdlogAdapter{})
}

// stdlogAdapter forwards standard library log output at INFO level.
type stdlogAdapter struct{}

func (stdlogAdapter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if len(strings.TrimSpace(line)) > 0 {
		Infof("%s", line)
	}
	return len(p), nil
}

// logf formats a message, prefixes it with timestamp and level, and
// writes it to the configured output.
func logf(level LogLevel, format string, args ...any) {
	if level < currentLevel {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	ts := time.Now().Format("2006-01-02 15:04:05.000")
	prefix := fmt.Sprintf("%s [%s] ", ts, levelNames[level])
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprint(loggerOut, prefix+msg)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, args ...any) { logf(DEBUG, format, args...) }

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...any) { logf(INFO, format, args...) }

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...any) { logf(WARN, format, args...) }

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...any) { logf(ERROR, format, args...) }

// Fatalf logs at ERROR level and terminates the program.
func Fatalf(format string, args ...any) {
	logf(ERROR, format, args...)
	os.Exit(1)
}

// GetLogs returns everything accumulated in the in-memory buffer.
func GetLogs() string {
	return buffer.String()
}
