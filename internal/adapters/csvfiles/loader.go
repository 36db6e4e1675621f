package csvfiles

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	"github.com/randomtoy/roulette/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrUndecodable is returned for files that are neither UTF-8 nor Shift-JIS.
var ErrUndecodable = errors.New("not valid utf-8 or shift-jis")

// Loader implements ports.CatalogSource over the *.csv files of a directory.
type Loader struct {
	dir    string
	logger *slog.Logger
}

func NewLoader(dir string, logger *slog.Logger) *Loader {
	return &Loader{dir: dir, logger: logger}
}

// Load reads every *.csv file in the directory, in name order. A file that
// cannot be read or parsed is logged and skipped; rows it contributed before
// the failure are kept.
func (l *Loader) Load(ctx context.Context) (domain.Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(l.dir, "*.csv"))
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("list csv files: %w", err)
	}
	if len(paths) == 0 {
		l.logger.WarnContext(ctx, "no csv files found", "dir", l.dir)
		return domain.NewCatalog(nil), nil
	}

	b := domain.NewCatalogBuilder()
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return domain.Catalog{}, err
		}
		enc, err := loadFile(path, b.NewFile())
		if err != nil {
			l.logger.ErrorContext(ctx, "failed to load csv file", "file", filepath.Base(path), "error", err)
			continue
		}
		l.logger.DebugContext(ctx, "loaded csv file", "file", filepath.Base(path), "encoding", enc)
	}

	cat := b.Build()
	l.logger.InfoContext(ctx, "catalog loaded", "files", len(paths), "categories", cat.Len())
	return cat, nil
}

func loadFile(path string, cur *domain.FileCursor) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	text, enc, err := decode(raw)
	if err != nil {
		return "", err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return enc, nil
		}
		if err != nil {
			return enc, fmt.Errorf("parse: %w", err)
		}
		cur.AddRow(rec)
	}
}

// decode returns UTF-8 text, falling back to Shift-JIS when raw is not
// valid UTF-8. The Shift-JIS decoder substitutes U+FFFD for bytes it cannot
// map, and Shift-JIS has no encoding of U+FFFD, so any in the output means
// the file is in neither encoding.
func decode(raw []byte) ([]byte, string, error) {
	if utf8.Valid(raw) {
		return bytes.TrimPrefix(raw, utf8BOM), "utf-8", nil
	}
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, "", fmt.Errorf("decode shift-jis: %w", err)
	}
	if i := bytes.IndexRune(out, utf8.RuneError); i >= 0 {
		return nil, "", fmt.Errorf("%w: invalid byte sequence near offset %d", ErrUndecodable, i)
	}
	return out, "shift-jis", nil
}
