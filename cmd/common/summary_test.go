package common

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/danieldk/embednet"
)

func TestLogSummaryAllPercentiles(t *testing.T) {
	summary := &embednet.Summary{Percentiles: embednet.AllPercentiles()}
	for i := 1; i <= 100; i++ {
		summary.Add(float64(i) / 100)
	}

	var buf bytes.Buffer
	LogSummary(log.New(&buf, "", 0), summary)

	out := buf.String()
	for p := 1; p <= 99; p++ {
		if label := fmt.Sprintf("summary: p%d ", p); !strings.Contains(out, label) {
			t.Errorf("log should contain %q", label)
		}
	}

	if n := strings.Count(out, "summary: p"); n != 99 {
		t.Errorf("log should have 99 percentile lines, had %d", n)
	}

	if strings.Contains(out, "p100") || strings.Contains(out, "p0 ") {
		t.Errorf("log should only contain p1 to p99, was: %q", out)
	}
}

func TestLogSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	LogSummary(log.New(&buf, "", 0), &embednet.Summary{})

	if !strings.Contains(buf.String(), "no distances") {
		t.Errorf("empty summary should be reported, log was: %q", buf.String())
	}
}
