// Package export produces the downloadable artifacts of a code issuance.
package export

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/veritrace/veritrace/internal/adapter"
	"github.com/veritrace/veritrace/internal/store/schema"
)

// detectionWindow is how many leading bytes are kept for MIME detection
const detectionWindow = 3072

// ManifestWriter renders an issued batch as a CSV manifest for the print
// shop: one row per code with the claim URLs and the printable outer code.
type ManifestWriter struct {
	fs      adapter.FileSystem
	baseURL string
}

// NewManifestWriter creates a manifest writer rooted at baseURL
func NewManifestWriter(fs adapter.FileSystem, baseURL string) *ManifestWriter {
	return &ManifestWriter{fs: fs, baseURL: baseURL}
}

// Write streams the manifest for the given codes into a file under dir and
// returns the stored-file entity describing it. The caller persists the
// entity and owns cleanup on failure.
func (w *ManifestWriter) Write(dir string, orderID string, codes []schema.TracingCode, now time.Time) (*schema.StoredFile, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("manifest requires at least one code (order=%s)", orderID)
	}

	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create manifest directory (dir=%s): %w", dir, err)
	}

	name := fmt.Sprintf("tracing-codes-%s-%d.csv", orderID, now.Unix())
	path := filepath.Join(dir, name)

	f, err := w.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file (path=%s): %w", path, err)
	}
	defer f.Close()

	counter := &countingWriter{w: f}
	cw := csv.NewWriter(counter)

	if err := cw.Write([]string{"outer_url", "inner_url", "outer_code"}); err != nil {
		return nil, fmt.Errorf("failed to write manifest header: %w", err)
	}
	for i := range codes {
		row := []string{
			w.codeURL(codes[i].OuterCode),
			w.codeURL(codes[i].InnerCode),
			codes[i].OuterCode,
		}
		if err := cw.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write manifest row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush manifest: %w", err)
	}

	return &schema.StoredFile{
		ID:          uuid.NewString(),
		Path:        path,
		Size:        counter.n,
		ContentType: mimetype.Detect(counter.head).String(),
		CreatedAt:   now,
	}, nil
}

func (w *ManifestWriter) codeURL(code string) string {
	return fmt.Sprintf("%s/t/%s", w.baseURL, code)
}

// countingWriter tracks the byte count and retains a prefix for MIME
// detection while passing everything through.
type countingWriter struct {
	w    adapter.File
	n    int64
	head []byte
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if len(c.head) < detectionWindow {
		remain := detectionWindow - len(c.head)
		if remain > n {
			remain = n
		}
		c.head = append(c.head, p[:remain]...)
	}
	return n, err
}
