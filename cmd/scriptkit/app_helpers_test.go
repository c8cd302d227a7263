package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bashhack/scriptkit/internal/config"
	"github.com/bashhack/scriptkit/internal/mail"
	"github.com/bashhack/scriptkit/internal/notify"
	"github.com/bashhack/scriptkit/internal/shell"
)

// MockLocker implements the Locker interface for testing
type MockLocker struct {
	AcquireErr    error
	ReleaseErr    error
	AcquireCalled bool
	ReleaseCalled bool
	held          bool
}

func (m *MockLocker) Acquire() error {
	m.AcquireCalled = true
	if m.AcquireErr != nil {
		return m.AcquireErr
	}
	m.held = true
	return nil
}

func (m *MockLocker) Release() error {
	m.ReleaseCalled = true
	m.held = false
	return m.ReleaseErr
}

func (m *MockLocker) Held() bool {
	return m.held
}

// MockLogger implements logger.Logger and keeps every message
type MockLogger struct {
	mu          sync.Mutex
	Messages    []string
	ErrorCalled bool
	CloseCalled bool
	CloseErr    error
}

func (m *MockLogger) record(level, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, level+": "+fmt.Sprintf(format, args...))
}

func (m *MockLogger) Debug(format string, args ...interface{})   { m.record("debug", format, args...) }
func (m *MockLogger) Info(format string, args ...interface{})    { m.record("info", format, args...) }
func (m *MockLogger) Warning(format string, args ...interface{}) { m.record("warning", format, args...) }
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.ErrorCalled = true
	m.record("error", format, args...)
}
func (m *MockLogger) InfoToUser(format string, args ...interface{}) {
	m.record("user", format, args...)
}
func (m *MockLogger) WarningToUser(format string, args ...interface{}) {
	m.record("user-warning", format, args...)
}
func (m *MockLogger) Success(format string, args ...interface{}) {
	m.record("success", format, args...)
}
func (m *MockLogger) StatusMessage(format string, args ...interface{}) {
	m.record("status", format, args...)
}
func (m *MockLogger) Close() error {
	m.CloseCalled = true
	return m.CloseErr
}

// Contains reports whether any recorded message contains substr
func (m *MockLogger) Contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// MockExecutor returns a canned result and records commands
type MockExecutor struct {
	Result   shell.Result
	Err      error
	Commands []string
}

func (m *MockExecutor) Run(_ context.Context, command string) (shell.Result, error) {
	m.Commands = append(m.Commands, command)
	return m.Result, m.Err
}

// MockPinger returns a canned reachability answer
type MockPinger struct {
	Reachable bool
	Err       error
	Host      string
	Count     int
}

func (m *MockPinger) Ping(_ context.Context, host string, count int) (bool, error) {
	m.Host = host
	m.Count = count
	return m.Reachable, m.Err
}

// MockMailer records sent messages
type MockMailer struct {
	Sent []mail.Message
	Err  error
}

func (m *MockMailer) Send(_ context.Context, msg mail.Message) error {
	m.Sent = append(m.Sent, msg)
	return m.Err
}

// MockNotifier records direct messages
type MockNotifier struct {
	To, Text, Attachment string
	Err                  error
}

func (m *MockNotifier) Notify(_ context.Context, to, text, attachmentPath string) error {
	m.To, m.Text, m.Attachment = to, text, attachmentPath
	return m.Err
}

// testApp bundles an App with its captured output
type testApp struct {
	*App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	logger *MockLogger
	dir    string
}

// newTestApp creates an App whose program path lives in a temp dir so the
// default config file is <dir>/script.yaml.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dir := t.TempDir()
	cfg := config.New()
	cfg.Program = filepath.Join(dir, "script")
	cfg.LockDir = dir

	var stdout, stderr bytes.Buffer
	log := &MockLogger{}

	app := NewApp(AppOptions{
		Config: cfg,
		Logger: log,
		Stdout: &stdout,
		Stderr: &stderr,
		Exit:   func(int) {},
	})

	return &testApp{App: app, stdout: &stdout, stderr: &stderr, logger: log, dir: dir}
}

// writeConfig writes the default config file for the test app
func (ta *testApp) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(ta.Config.Program+config.ConfigFileSuffix, []byte(content), 0644))
}

// execute runs args through the command tree and returns the exit code
func (ta *testApp) execute(args ...string) int {
	return run(context.Background(), ta.App, args)
}

var _ notify.Notifier = (*MockNotifier)(nil)
