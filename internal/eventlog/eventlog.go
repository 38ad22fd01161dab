// Package eventlog appends a machine readable record of every setup run
// to a per-day JSONL file. The log answers "what did ng-setup decide and
// execute" after the terminal output is gone.
package eventlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// EventType classifies a logged event.
type EventType string

const (
	EventTypeRunStarted         EventType = "run_started"
	EventTypeEnvironmentChecked EventType = "environment_checked"
	EventTypeVersionSelected    EventType = "version_selected"
	EventTypeLibraryResolved    EventType = "library_resolved"
	EventTypeInstallStarted     EventType = "install_started"
	EventTypeProjectCreated     EventType = "project_created"
	EventTypeError              EventType = "error"
)

// Event is one line in the run log.
type Event struct {
	Timestamp   time.Time              `json:"timestamp"`
	EventType   EventType              `json:"event_type"`
	Message     string                 `json:"message"`
	PackageName string                 `json:"package_name,omitempty"`
	Version     string                 `json:"version,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// Logger appends events to a single log file. Safe for concurrent use.
type Logger struct {
	file   *os.File
	writer io.Writer
	mu     sync.Mutex
	active bool
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Log files older than this are removed on startup.
const retention = 7 * 24 * time.Hour

const logFileSuffix = "-ng-setup.log"

// GetDefaultLogDir returns the per-user log directory for the current
// platform.
func GetDefaultLogDir() (string, error) {
	if runtime.GOOS == "windows" {
		if baseDir := os.Getenv("LOCALAPPDATA"); baseDir != "" {
			return filepath.Join(baseDir, "ng-setup", "logs"), nil
		}

		if baseDir := os.Getenv("USERPROFILE"); baseDir != "" {
			return filepath.Join(baseDir, ".ng-setup", "logs"), nil
		}

		return "", fmt.Errorf("could not determine Windows user directory")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	return filepath.Join(homeDir, ".ng-setup", "logs"), nil
}

// Initialize sets up the global event logger in the default log
// directory.
func Initialize() error {
	logDir, err := GetDefaultLogDir()
	if err != nil {
		return err
	}

	return InitializeWithDir(logDir)
}

// InitializeWithDir sets up the global event logger with a custom log
// directory. Only the first initialization in a process takes effect.
func InitializeWithDir(logDir string) error {
	var initErr error

	once.Do(func() {
		globalLogger = &Logger{}
		initErr = globalLogger.init(logDir)
	})

	return initErr
}

// InitializeWithFile sets up the global event logger on a specific file.
// No retention cleanup runs for custom files, the user owns them.
func InitializeWithFile(filePath string) error {
	var initErr error

	once.Do(func() {
		globalLogger = &Logger{}
		initErr = globalLogger.open(filePath)
	})

	return initErr
}

// reinitializeForTest resets the global logger. Tests only.
func reinitializeForTest(logDir string) error {
	if globalLogger != nil {
		globalLogger.Close()
	}

	once = sync.Once{}

	return InitializeWithDir(logDir)
}

func (l *Logger) init(logDir string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := time.Now().Format("20060102") + logFileSuffix
	if err := l.open(filepath.Join(logDir, logFileName)); err != nil {
		return err
	}

	go l.cleanupOldLogs(logDir)

	return nil
}

func (l *Logger) open(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = file
	l.writer = file
	l.active = true

	return nil
}

// cleanupOldLogs removes run logs past the retention window. Failures
// are ignored, losing old logs is not worth failing a run over.
func (l *Logger) cleanupOldLogs(logDir string) {
	cutoff := time.Now().Add(-retention)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matched, err := filepath.Match("*"+logFileSuffix, entry.Name())
		if err != nil || !matched {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(logDir, entry.Name()))
		}
	}
}

// Log appends one event. The timestamp is filled in when unset.
func (l *Logger) Log(event Event) error {
	if !l.active {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := l.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	if l.file != nil {
		l.file.Sync()
	}

	return nil
}

// Close stops the logger and closes the underlying file.
func (l *Logger) Close() error {
	if !l.active {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.active = false
	if l.file != nil {
		return l.file.Close()
	}

	return nil
}

// LogEvent logs an event through the global logger. A no-op before
// initialization, event logging must never break a run.
func LogEvent(event Event) error {
	if globalLogger == nil || !globalLogger.active {
		return nil
	}

	return globalLogger.Log(event)
}

// LogRunStarted records the start of an interactive or replayed setup.
func LogRunStarted(projectName string, dryRun bool) {
	LogEvent(Event{
		EventType: EventTypeRunStarted,
		Message:   fmt.Sprintf("Starting setup for project %s", projectName),
		Details: map[string]interface{}{
			"project_name": projectName,
			"dry_run":      dryRun,
		},
	})
}

// LogEnvironmentChecked records which required tools were missing, if
// any.
func LogEnvironmentChecked(missing []string) {
	message := "Environment check passed"
	if len(missing) > 0 {
		message = fmt.Sprintf("Environment check found %d missing tools", len(missing))
	}

	LogEvent(Event{
		EventType: EventTypeEnvironmentChecked,
		Message:   message,
		Details: map[string]interface{}{
			"missing": missing,
		},
	})
}

// LogVersionSelected records the Angular version chosen for the project.
func LogVersionSelected(version string) {
	LogEvent(Event{
		EventType: EventTypeVersionSelected,
		Message:   fmt.Sprintf("Selected Angular %s", version),
		Version:   version,
	})
}

// LogLibraryResolved records one compatibility resolution outcome.
func LogLibraryResolved(name, version, source string, warning bool) {
	LogEvent(Event{
		EventType:   EventTypeLibraryResolved,
		Message:     fmt.Sprintf("Resolved %s@%s (%s)", name, version, source),
		PackageName: name,
		Version:     version,
		Details: map[string]interface{}{
			"source":  source,
			"warning": warning,
		},
	})
}

// LogInstallStarted records the start of a package installation.
func LogInstallStarted(packageManager string, args []string) {
	LogEvent(Event{
		EventType: EventTypeInstallStarted,
		Message:   fmt.Sprintf("Starting package installation with %s", packageManager),
		Details: map[string]interface{}{
			"package_manager": packageManager,
			"arguments":       args,
		},
	})
}

// LogProjectCreated records a completed setup.
func LogProjectCreated(projectName, angularVersion string, libraryCount int) {
	LogEvent(Event{
		EventType: EventTypeProjectCreated,
		Message:   fmt.Sprintf("Created project %s on Angular %s", projectName, angularVersion),
		Version:   angularVersion,
		Details: map[string]interface{}{
			"project_name":  projectName,
			"library_count": libraryCount,
		},
	})
}

// LogError records a failure worth investigating later.
func LogError(message string, err error) {
	LogEvent(Event{
		EventType: EventTypeError,
		Message:   message,
		Details: map[string]interface{}{
			"error": err.Error(),
		},
	})
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}

	return nil
}

// IsInitialized reports whether the global logger is ready.
func IsInitialized() bool {
	return globalLogger != nil && globalLogger.active
}
