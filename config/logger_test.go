package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingConfig_Prepare_FileLog(t *testing.T) {
	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: filepath.Join(dir, "test.log"), Mode: "overwrite"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("hidden")
	log.Info("visible")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(data), "visible") {
		t.Errorf("info message missing from log:\n%s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Errorf("debug message must be filtered at normal level:\n%s", data)
	}
}

func TestLoggingConfig_Prepare_ReportForcesDebug(t *testing.T) {
	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(dir, "test.log")},
	}
	rpt := &Report{entries: make(map[string]entry)}

	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("details")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(data), "details") {
		t.Errorf("debug message missing from log:\n%s", data)
	}
	if _, ok := rpt.entries["final.log"]; !ok {
		t.Error("log file was not registered with report")
	}
}

func TestLoggingConfig_Prepare_NoFile(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(t.TempDir(), "test.log")},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Info("nowhere")
	if _, err := os.Stat(conf.FileLogger.Destination); !os.IsNotExist(err) {
		t.Errorf("log file should not be created, stat error = %v", err)
	}
}

func TestFileLevel(t *testing.T) {
	for level, want := range map[string]bool{"debug": true, "normal": true, "none": false, "": false} {
		if _, ok := fileLevel(level); ok != want {
			t.Errorf("fileLevel(%q) enabled = %v, want %v", level, ok, want)
		}
	}
}
