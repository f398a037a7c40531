package marisa

import (
	"bytes"

	"github.com/pkg/errors"
)

// fileMagic is the 16-byte header every on-disk trie file begins
// with.
var fileMagic = []byte("We love Marisa.\x00")

func writeHeader(w *ioWriter) error {
	return w.writeRaw(fileMagic)
}

func readHeader(r *ioReader) error {
	got, err := r.readRaw(len(fileMagic))
	if err != nil {
		return errors.Wrap(err, "marisa: failed to read header")
	}
	if !bytes.Equal(got, fileMagic) {
		return errors.New("marisa: bad file header (not a marisa trie file)")
	}
	return nil
}
