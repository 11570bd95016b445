// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package log

import (
	"os"
	"path/filepath"
	"sync"
)

// LoggerFile is the name of the log file created by OpenFileAtPath.
const LoggerFile = "tracelayer.log"

// FileHandle wraps an *os.File opened by OpenFileAtPath, safe to Close
// from multiple goroutines.
type FileHandle struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// OpenFileAtPath opens (creating if necessary) LoggerFile inside dir for
// appending.
func OpenFileAtPath(dir string) (*FileHandle, error) {
	f, err := os.OpenFile(filepath.Join(dir, LoggerFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileHandle{file: f}, nil
}

// Log implements Logger by appending a newline-terminated line to the
// file.
func (h *FileHandle) Log(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.file.WriteString(msg + "\n")
}

// Close closes the underlying file. It is idempotent and safe to call
// concurrently.
func (h *FileHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.file.Close()
}
