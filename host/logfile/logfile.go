// host/logfile/logfile.go
package logfile

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"lostwheel-go/errcode"
	"lostwheel-go/host/acquire"
)

// Writer appends one CSV file per recording session. A session is opened
// with Start, fed with Append and finished with Stop; outside a session
// Append is an error.
type Writer struct {
	dir     string
	log     zerolog.Logger
	f       *os.File
	w       *csv.Writer
	session string
}

func New(dir string, log zerolog.Logger) *Writer {
	return &Writer{dir: dir, log: log}
}

// Path returns the file a session is (or would be) written to.
func (w *Writer) Path(session string) string {
	return filepath.Join(w.dir, session+".csv")
}

// Session names the active session, empty when idle.
func (w *Writer) Session() string { return w.session }

// Start opens a new session file and writes the header row. An already
// active session is stopped first.
func (w *Writer) Start(session string) error {
	const op = "logfile.Start"
	if w.f != nil {
		if err := w.Stop(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return &errcode.E{C: errcode.SinkWrite, Op: op, Err: err}
	}
	f, err := os.Create(w.Path(session))
	if err != nil {
		return &errcode.E{C: errcode.SinkWrite, Op: op, Err: err}
	}
	w.f = f
	w.w = csv.NewWriter(f)
	w.session = session
	if err := w.w.Write([]string{"timestamp", "elapsed", "count"}); err != nil {
		return &errcode.E{C: errcode.SinkWrite, Op: op, Err: err}
	}
	w.log.Info().Str("session", session).Str("path", w.Path(session)).Msg("recording started")
	return nil
}

// Append writes one measurement row.
func (w *Writer) Append(m acquire.Measurement) error {
	const op = "logfile.Append"
	if w.f == nil {
		return &errcode.E{C: errcode.SinkWrite, Op: op, Msg: "no active session"}
	}
	row := []string{
		m.At.Format(time.RFC3339),
		strconv.FormatFloat(m.Elapsed, 'f', 2, 64),
		strconv.FormatUint(uint64(m.Count), 10),
	}
	if err := w.w.Write(row); err != nil {
		return &errcode.E{C: errcode.SinkWrite, Op: op, Err: err}
	}
	return nil
}

// Stop flushes and closes the active session file.
func (w *Writer) Stop() error {
	if w.f == nil {
		return nil
	}
	w.w.Flush()
	err := w.w.Error()
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	w.log.Info().Str("session", w.session).Msg("recording stopped")
	w.f, w.w, w.session = nil, nil, ""
	if err != nil {
		return &errcode.E{C: errcode.SinkWrite, Op: "logfile.Stop", Err: err}
	}
	return nil
}
