// Package collector implements the log collector subsystem's main loop:
// CollectorState, process bootstrap, and the per-iteration skeleton that
// ties Pipe Drain, File Sink, Rotation Controller, and the Signal/Config
// Coordinator together.
package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Data-Corruption/logcollector/internal/collector/drain"
	"github.com/Data-Corruption/logcollector/internal/collector/sink"
	"github.com/Data-Corruption/logcollector/internal/config"
	"github.com/Data-Corruption/logcollector/internal/diag"
	"github.com/Data-Corruption/logcollector/internal/handoff"
	"github.com/Data-Corruption/logcollector/internal/signals"
)

// State is the process-singleton collector state, collected into one owned
// value threaded through the main loop rather than kept in module-scope
// globals.
type State struct {
	pipeRead *os.File
	sink     *sink.Sink
	drainer  drain.Drainer
	log      *diag.Logger
	signals  *signals.Coordinator

	cfg           *config.Config
	configPath    string
	dataDir       string
	supervisorPID int

	lastRotationTime time.Time
	currentLogDir    string
	pipeEOFSeen      bool
}

// BootstrapOptions carries everything Bootstrap needs that isn't itself
// computed: the inherited pipe, an optional inherited file from a respawn,
// and the live configuration.
type BootstrapOptions struct {
	// PipeRead is the inherited read end of the shared pipe.
	PipeRead *os.File
	// PipeWriteEnd is the collector's own copy of the write end, if any. It
	// is closed immediately so the collector's own fd table doesn't keep
	// the pipe artificially open against EOF detection.
	PipeWriteEnd *os.File

	Config     *config.Config
	ConfigPath string
	DataDir    string

	// SupervisorPID is embedded in generated file names.
	SupervisorPID int

	// Handoff is non-nil on a respawn. It may carry an already-open current
	// file handle and a record of whether stderr redirection has already
	// happened.
	Handoff *handoff.Args
}

// BootstrapResult reports what Bootstrap did, for callers (tests, and
// cmd/logcollector run) that want to log or assert on it without reaching
// into State's unexported fields.
type BootstrapResult struct {
	State         *State
	OpenedNewFile bool // false when an inherited handle from a respawn was adopted instead
	FilePath      string
}

// Bootstrap validates and opens everything the main loop needs before it
// starts, so a bad log_directory fails fast here with a clear diagnostic
// instead of surfacing confusingly deep inside the loop. This is the one
// place an error is fatal to the collector process: a failed initial file
// open aborts supervisor startup.
func Bootstrap(opts BootstrapOptions) (*BootstrapResult, error) {
	if opts.PipeWriteEnd != nil {
		if err := opts.PipeWriteEnd.Close(); err != nil {
			return nil, fmt.Errorf("collector: close inherited pipe write end: %w", err)
		}
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	st := &State{
		pipeRead:         opts.PipeRead,
		cfg:              cfg,
		configPath:       opts.ConfigPath,
		dataDir:          opts.DataDir,
		supervisorPID:    opts.SupervisorPID,
		lastRotationTime: time.Now(),
		currentLogDir:    cfg.LogDirectory,
		signals:          signals.New(),
	}

	result := &BootstrapResult{State: st}

	if opts.Handoff != nil {
		if f, ok := handoff.InheritedFile(*opts.Handoff, "inherited-log-file"); ok {
			st.sink = sink.New(f)
			result.FilePath = f.Name()
		}
		if opts.Handoff.RedirectionDone {
			if err := handoff.RedirectStandardStreamsToNull(); err != nil {
				return nil, fmt.Errorf("collector: redirect std streams: %w", err)
			}
		}
	}

	if st.sink == nil {
		path := logFileName(st.dataDir, cfg.LogDirectory, cfg.LogFilenamePrefix, st.supervisorPID, st.lastRotationTime)
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("collector: create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("collector: open initial log file: %w", err)
		}
		st.sink = sink.New(f)
		result.OpenedNewFile = true
		result.FilePath = path
	}

	st.log = diag.New(st.sink)
	st.drainer = drain.New(st.pipeRead, st.sink, func(err error) {
		st.log.Warnf("pipe drain error: %v", err)
	})

	return result, nil
}

// Run executes the main loop until pipe EOF is observed, then returns nil.
// It never returns a non-nil error for ordinary runtime faults, since the
// collector is meant to degrade rather than crash; the only error this can
// return would indicate a programming error in Close.
func (s *State) Run() error {
	stopSignals := s.signals.Start()
	defer stopSignals()

	for {
		dirChanged := false
		if s.signals.PollAndClear() {
			dirChanged = processReload(s.configPath, s.cfg, &s.currentLogDir, s.log)
		}

		size, err := s.sink.Size()
		if err != nil {
			s.log.Warnf("could not stat current log file: %v", err)
		}

		if rotationRequested(s.cfg, dirChanged, s.lastRotationTime, time.Now(), size) {
			if newTime, ok := rotate(s.sink, s.cfg, s.log, s.dataDir, s.supervisorPID, time.Now()); ok {
				s.lastRotationTime = newTime
			}
		}

		result := s.drainer.PumpOnce()
		switch result.Outcome {
		case drain.Data:
			if n, werr := s.sink.Write(result.Chunk); werr != nil || n < len(result.Chunk) {
				s.log.Warnf("short or failed write (%d/%d bytes): %v", n, len(result.Chunk), werr)
			}
		case drain.Eof:
			s.pipeEOFSeen = true
		case drain.Idle:
			if result.Err != nil {
				s.log.Warnf("pipe read error, treated as idle: %v", result.Err)
			}
		}

		if s.pipeEOFSeen {
			s.log.Info("logger shutting down")
			return s.Close()
		}
	}
}

// Close releases the Sink and Drainer. Called once, at the end of Run.
func (s *State) Close() error {
	if err := s.drainer.Close(); err != nil {
		return fmt.Errorf("collector: close drainer: %w", err)
	}
	if err := s.sink.Close(); err != nil {
		return fmt.Errorf("collector: close sink: %w", err)
	}
	return s.pipeRead.Close()
}
