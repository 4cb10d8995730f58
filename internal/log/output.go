package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// OutputLogger records what external build commands print.
type OutputLogger interface {
	Log(step string, stderr bool, data []byte)
}

// outputLogger implements OutputLogger with thread-safe log.
type outputLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewOutput creates a new OutputLogger. If writer is nil, returns a no-op logger.
func NewOutput(w io.Writer) OutputLogger {
	return &outputLogger{w: w}
}

// Log emits one timestamped line per line of data, tagged with the step
// name and the stream it came from.
func (o *outputLogger) Log(step string, stderr bool, data []byte) {
	if len(data) == 0 {
		return
	}
	if o.w == nil {
		return
	}

	stream := "stdout"
	if stderr {
		stream = "stderr"
	}
	ts := time.Now().Format("2006/01/02 15:04:05")

	var buf bytes.Buffer
	for _, line := range bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n")) {
		fmt.Fprintf(&buf, "%s %s %s: %s\n", ts, step, stream, line)
	}

	o.mu.Lock()
	_, _ = o.w.Write(buf.Bytes())
	o.mu.Unlock()
}

type stepWriter struct {
	o      OutputLogger
	step   string
	stderr bool
}

// StepWriter adapts an OutputLogger into an io.Writer for one step's stream.
func StepWriter(o OutputLogger, step string, stderr bool) io.Writer {
	return &stepWriter{o: o, step: step, stderr: stderr}
}

func (w *stepWriter) Write(p []byte) (int, error) {
	w.o.Log(w.step, w.stderr, p)
	return len(p), nil
}
