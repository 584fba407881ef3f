package assessmentlog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// FileLog keeps assessments in a delimited text file: a header row written
// when the file is created, then one row per assessment.
//
// The answer columns are fixed when the file is created, from the question
// IDs the FileLog was built with. Unanswered questions are stored as empty
// cells. A record answering a question outside those columns is rejected
// with ErrSchemaMismatch, since rewriting the header would rewrite history.
//
// A row cut short by an interrupted write is left in place; the next Append
// starts on a fresh line and ReadAll skips the short row, passing its line
// number to the skip reporter.
//
// Writers take an exclusive lock on "<path>.lock".
type FileLog struct {
	path        string
	questionIDs []string
	delimiter   rune
	onSkip      func(line int, reason error)
}

// FileOption configures a FileLog.
type FileOption func(*FileLog)

// WithDelimiter sets the field delimiter. The default is ';'.
func WithDelimiter(r rune) FileOption {
	return func(l *FileLog) {
		if r != 0 {
			l.delimiter = r
		}
	}
}

// WithSkipReporter sets the callback ReadAll uses for each incomplete row
// it skips.
func WithSkipReporter(fn func(line int, reason error)) FileOption {
	return func(l *FileLog) {
		l.onSkip = fn
	}
}

// NewFileLog creates a FileLog at path whose new files get one answer
// column per entry of questionIDs.
func NewFileLog(path string, questionIDs []string, opts ...FileOption) *FileLog {
	l := &FileLog{
		path:        path,
		questionIDs: append([]string(nil), questionIDs...),
		delimiter:   ';',
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the log file location.
func (l *FileLog) Path() string {
	return l.path
}

// Delimiter returns the field delimiter.
func (l *FileLog) Delimiter() rune {
	return l.delimiter
}

func (l *FileLog) lock() *flock.Flock {
	return flock.New(l.path + ".lock")
}

// Append writes rec as a new row, creating the file and its header first if
// needed. Existing rows are never touched.
func (l *FileLog) Append(ctx context.Context, rec domain.AssessmentRecord) (err error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("%w: creating log directory: %w", domain.ErrLogWrite, err)
	}

	lk := l.lock()
	if _, err := lk.TryLockContext(ctx, lockRetryDelay); err != nil {
		return fmt.Errorf("%w: locking %s: %w", domain.ErrLogWrite, l.path, err)
	}
	defer func() {
		if uerr := lk.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("%w: unlocking %s: %w", domain.ErrLogWrite, l.path, uerr)
		}
	}()

	f, err := os.OpenFile(l.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", domain.ErrLogWrite, l.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", domain.ErrLogWrite, l.path, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", domain.ErrLogWrite, l.path, err)
	}

	var buf bytes.Buffer
	columns := l.questionIDs
	if info.Size() == 0 {
		if err := l.writeRecord(&buf, header(columns)); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrLogWrite, err)
		}
	} else {
		h, err := l.readHeader(f)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrLogWrite, l.path, err)
		}
		if columns, err = questionColumns(h); err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrLogWrite, l.path, err)
		}
		// A previous write stopped mid-row: start on a fresh line so the
		// torn row stays separate and ReadAll can skip it.
		if last, err := lastByte(f, info.Size()); err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrLogWrite, l.path, err)
		} else if last != '\n' {
			buf.WriteByte('\n')
		}
	}

	if err := fits(rec, columns); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLogWrite, err)
	}
	if err := l.writeRecord(&buf, encodeRow(rec, columns)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLogWrite, err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrLogWrite, l.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: syncing %s: %w", domain.ErrLogWrite, l.path, err)
	}
	return nil
}

// ReadAll returns every row in file order.
func (l *FileLog) ReadAll(ctx context.Context) (_ []domain.AssessmentRecord, err error) {
	if _, statErr := os.Stat(l.path); errors.Is(statErr, os.ErrNotExist) {
		return []domain.AssessmentRecord{}, nil
	}

	lk := l.lock()
	if _, err := lk.TryRLockContext(ctx, lockRetryDelay); err != nil {
		return nil, fmt.Errorf("%w: locking %s: %w", domain.ErrLogRead, l.path, err)
	}
	defer lk.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.AssessmentRecord{}, nil
		}
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrLogRead, l.path, err)
	}
	defer f.Close()

	return decodeAll(f, l.delimiter, l.onSkip)
}

func decodeAll(r io.Reader, delimiter rune, onSkip func(line int, reason error)) ([]domain.AssessmentRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.AssessmentRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", domain.ErrLogRead, err)
	}
	columns, err := questionColumns(h)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLogRead, err)
	}

	out := []domain.AssessmentRecord{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLogRead, err)
		}
		rec, err := decodeRow(row, columns)
		if err != nil {
			line, _ := cr.FieldPos(0)
			if errors.Is(err, errTornRow) {
				if onSkip != nil {
					onSkip(line, err)
				}
				continue
			}
			return nil, fmt.Errorf("%w: line %d: %w", domain.ErrLogRead, line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (l *FileLog) readHeader(f *os.File) ([]string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to header: %w", err)
	}
	cr := csv.NewReader(f)
	cr.Comma = l.delimiter
	cr.FieldsPerRecord = -1
	h, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return h, nil
}

func (l *FileLog) writeRecord(w io.Writer, fields []string) error {
	cw := csv.NewWriter(w)
	cw.Comma = l.delimiter
	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("encoding row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func lastByte(f *os.File, size int64) (byte, error) {
	b := make([]byte, 1)
	if _, err := f.ReadAt(b, size-1); err != nil {
		return 0, fmt.Errorf("reading last byte: %w", err)
	}
	return b[0], nil
}
