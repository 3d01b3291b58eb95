package report

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

func (r *Report) renderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ExportArchive writes the JSON-encoded report to path, zstd-compressed
// when the path carries a .zst suffix.
func (r *Report) ExportArchive(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if !strings.HasSuffix(path, ".zst") {
		return r.renderJSON(f)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if err := r.renderJSON(enc); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
