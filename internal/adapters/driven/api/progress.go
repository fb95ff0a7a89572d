package api

import (
	"io"

	"github.com/askdocs-labs/askdoc-cli/internal/core/ports/driven"
)

// progressReader counts bytes read from the wrapped reader and reports
// whole-percent changes. Duplicate notifications are suppressed here;
// the registry treats them as idempotent anyway.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	notify driven.UploadProgressFunc
}

func newProgressReader(r io.Reader, total int64, notify driven.UploadProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, last: -1, notify: notify}
}

// Read implements io.Reader.
func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.notify == nil || p.total <= 0 {
		return
	}
	pct := int(p.read * 100 / p.total)
	if pct > 100 {
		pct = 100
	}
	if pct != p.last {
		p.last = pct
		p.notify(pct)
	}
}
