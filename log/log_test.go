package log

import "bytes"
import "os"
import "path/filepath"
import "strings"
import "testing"

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil, map[string]interface{}{"log.level": "info"})

	ref := &defaultLogger{level: logLevelIgnore}
	if l := SetLogger(ref, nil); l != Logger(ref) {
		t.Errorf("expected %v, got %v", ref, l)
	}

	logfile := filepath.Join(t.TempDir(), "rbindex.log")
	setts := map[string]interface{}{"log.level": "info", "log.file": logfile}
	clog := SetLogger(nil, setts)
	clog.Infof("hello world\n")
	clog.Verbosef("not logged\n")
	clog.Debugf("not logged\n")
	clog.Tracef("not logged\n")

	data, err := os.ReadFile(logfile)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "[Infom] hello world") {
		t.Errorf("unexpected %q", s)
	} else if strings.Contains(s, "not logged") {
		t.Errorf("unexpected %q", s)
	}
}

func TestLogLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	l := &defaultLogger{level: logLevelWarn, output: buf}
	defer SetLogger(nil, map[string]interface{}{"log.level": "info"})
	SetLogger(l, nil)

	Errorf("error %v\n", 1)
	Warnf("warn %v\n", 2)
	Infof("info %v\n", 3)
	if s := buf.String(); !strings.Contains(s, "error 1") {
		t.Errorf("unexpected %q", s)
	} else if !strings.Contains(s, "warn 2") {
		t.Errorf("unexpected %q", s)
	} else if strings.Contains(s, "info 3") {
		t.Errorf("unexpected %q", s)
	}

	buf.Reset()
	l.SetLogLevel("trace")
	Tracef("trace %v\n", 4)
	Debugf("debug %v\n", 5)
	if s := buf.String(); !strings.Contains(s, "trace 4") || !strings.Contains(s, "debug 5") {
		t.Errorf("unexpected %q", s)
	}

	buf.Reset()
	l.SetLogLevel("ignore")
	Fatalf("fatal %v\n", 6)
	if buf.Len() != 0 {
		t.Errorf("unexpected %q", buf.String())
	}
}

func TestLogPrefix(t *testing.T) {
	refs := map[LogLevel]string{
		logLevelIgnore: "Ignor", logLevelFatal: "Fatal", logLevelError: "Error",
		logLevelWarn: "Warng", logLevelInfo: "Infom", logLevelVerbose: "Verbs",
		logLevelDebug: "Debug", logLevelTrace: "Trace",
	}
	for level, ref := range refs {
		if s := level.String(); s != ref {
			t.Errorf("expected %v, got %v", ref, s)
		}
	}
}

func TestLogLevelSettings(t *testing.T) {
	refs := map[string]LogLevel{
		"ignore": logLevelIgnore, "fatal": logLevelFatal, "error": logLevelError,
		"WARN": logLevelWarn, "info": logLevelInfo, "verbose": logLevelVerbose,
		"debug": logLevelDebug, "trace": logLevelTrace,
	}
	for s, ref := range refs {
		if l := string2logLevel(s); l != ref {
			t.Errorf("expected %v, got %v", ref, l)
		}
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	string2logLevel("loud")
}
