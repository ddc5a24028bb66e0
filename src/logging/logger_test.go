package logging

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetLogLevel("info")

	msg := "[figure1_study_area] saved pdf bytes=104857 coverage=91.6% (680 of 742 districts)"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "coverage=91.6% (680 of 742 districts)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestSetLogLevel_FiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetOutput(os.Stderr)
		SetLogLevel("info")
	}()

	SetLogLevel("warn")
	Infof("hidden %d", 1)
	Debugf("hidden too")
	Warnf("visible %s", "warning")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info/debug lines should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "visible warning") {
		t.Fatalf("warn line missing: %s", out)
	}
	if GetLogLevel() != LevelWarn {
		t.Fatalf("GetLogLevel = %v, want %v", GetLogLevel(), LevelWarn)
	}
}

func TestSetLogLevel_IgnoresUnknown(t *testing.T) {
	SetLogLevel("error")
	SetLogLevel("loud")
	if GetLogLevel() != LevelError {
		t.Fatalf("unknown level changed state: got %v", GetLogLevel())
	}
	SetLogLevel("info")
}

func TestSetOutput_WhileLogging(t *testing.T) {
	SetLogLevel("info")
	defer SetOutput(os.Stderr)

	bufs := []*bytes.Buffer{new(bytes.Buffer)}
	SetOutput(bufs[0])

	const workers, lines = 4, 100
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range lines {
				Infof("worker %d line %d", w, i)
			}
		}()
	}
	for range 10 {
		b := new(bytes.Buffer)
		bufs = append(bufs, b)
		SetOutput(b)
	}
	wg.Wait()

	total := 0
	for _, b := range bufs {
		total += strings.Count(b.String(), "\n")
	}
	if total != workers*lines {
		t.Fatalf("got %d log lines across outputs, want %d", total, workers*lines)
	}
}
