package marisa

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ioWriter wraps an io.Writer with a running byte offset, so that the
// 8-byte alignment padding GenericVector frames require (spec.md
// section 6.1) is computed relative to the start of the file rather
// than the start of each component -- required for nested
// LoudsTrieLevel frames to byte-align correctly.
type ioWriter struct {
	w      io.Writer
	offset int64
}

func newIOWriter(w io.Writer) *ioWriter {
	return &ioWriter{w: w}
}

func (w *ioWriter) writeRaw(b []byte) error {
	n, err := w.w.Write(b)
	w.offset += int64(n)
	if err != nil {
		return errors.Wrap(err, "marisa: write failed")
	}
	return nil
}

func (w *ioWriter) writeU32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return w.writeRaw(buf[:])
}

func (w *ioWriter) writeU64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.writeRaw(buf[:])
}

// pad8 zero-pads the stream so the next write starts on an 8-byte
// boundary relative to the start of the file.
func (w *ioWriter) pad8() error {
	rem := w.offset % 8
	if rem == 0 {
		return nil
	}
	pad := make([]byte, 8-rem)
	return w.writeRaw(pad)
}

// writeU8Vector writes a GenericVector<u8> frame: u64 total_bytes,
// raw bytes, zero-padding to the next 8-byte boundary.
func (w *ioWriter) writeU8Vector(data []byte) error {
	if err := w.writeU64(uint64(len(data))); err != nil {
		return err
	}
	if err := w.writeRaw(data); err != nil {
		return err
	}
	return w.pad8()
}

// writeU32Vector writes a GenericVector<u32> frame.
func (w *ioWriter) writeU32Vector(data []uint32) error {
	if err := w.writeU64(uint64(len(data)) * 4); err != nil {
		return err
	}
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	if err := w.writeRaw(buf); err != nil {
		return err
	}
	return w.pad8()
}

// writeU64Vector writes a GenericVector<u64> frame (used for the
// bitVector unit array on 64-bit targets).
func (w *ioWriter) writeU64Vector(data []uint64) error {
	if err := w.writeU64(uint64(len(data)) * 8); err != nil {
		return err
	}
	buf := make([]byte, len(data)*8)
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	if err := w.writeRaw(buf); err != nil {
		return err
	}
	return w.pad8()
}

// writeRankIndexVector writes a GenericVector<RankIndex> frame: each
// record is the 96-bit packed {abs, rel_lo, rel_hi}.
func (w *ioWriter) writeRankIndexVector(data []rankIndex) error {
	if err := w.writeU64(uint64(len(data)) * 12); err != nil {
		return err
	}
	buf := make([]byte, len(data)*12)
	for i, r := range data {
		binary.LittleEndian.PutUint32(buf[i*12:], r.abs)
		binary.LittleEndian.PutUint32(buf[i*12+4:], r.relLo)
		binary.LittleEndian.PutUint32(buf[i*12+8:], r.relHi)
	}
	if err := w.writeRaw(buf); err != nil {
		return err
	}
	return w.pad8()
}

// writeCacheVector writes a GenericVector<Cache> frame. Each record
// is 16 bytes: parent(u32) child(u32) base(u8)+pad(3) extra(u32).
func (w *ioWriter) writeCacheVector(data []cacheSlot) error {
	const recSize = 16
	if err := w.writeU64(uint64(len(data)) * recSize); err != nil {
		return err
	}
	buf := make([]byte, len(data)*recSize)
	for i, c := range data {
		o := i * recSize
		binary.LittleEndian.PutUint32(buf[o:], c.parent)
		binary.LittleEndian.PutUint32(buf[o+4:], c.child)
		buf[o+8] = c.base
		binary.LittleEndian.PutUint32(buf[o+12:], c.extra)
	}
	if err := w.writeRaw(buf); err != nil {
		return err
	}
	return w.pad8()
}

// ioReader is the read-side counterpart of ioWriter.
type ioReader struct {
	r      io.Reader
	offset int64
}

func newIOReader(r io.Reader) *ioReader {
	return &ioReader{r: r}
}

func (r *ioReader) readRaw(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.offset += int64(read)
	if err != nil {
		return nil, errors.Wrap(err, "marisa: truncated file")
	}
	return buf, nil
}

func (r *ioReader) readU32() (uint32, error) {
	buf, err := r.readRaw(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (r *ioReader) readU64() (uint64, error) {
	buf, err := r.readRaw(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

func (r *ioReader) pad8() error {
	rem := r.offset % 8
	if rem == 0 {
		return nil
	}
	_, err := r.readRaw(int(8 - rem))
	return err
}

func (r *ioReader) readU8Vector() ([]byte, error) {
	n, err := r.readU64()
	if err != nil {
		return nil, err
	}
	data, err := r.readRaw(int(n))
	if err != nil {
		return nil, err
	}
	if err := r.pad8(); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *ioReader) readU32Vector() ([]uint32, error) {
	totalBytes, err := r.readU64()
	if err != nil {
		return nil, err
	}
	if totalBytes%4 != 0 {
		return nil, errors.New("marisa: malformed u32 vector frame")
	}
	raw, err := r.readRaw(int(totalBytes))
	if err != nil {
		return nil, err
	}
	out := make([]uint32, totalBytes/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	if err := r.pad8(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ioReader) readU64Vector() ([]uint64, error) {
	totalBytes, err := r.readU64()
	if err != nil {
		return nil, err
	}
	if totalBytes%8 != 0 {
		return nil, errors.New("marisa: malformed u64 vector frame")
	}
	raw, err := r.readRaw(int(totalBytes))
	if err != nil {
		return nil, err
	}
	out := make([]uint64, totalBytes/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(raw[i*8:])
	}
	if err := r.pad8(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ioReader) readRankIndexVector() ([]rankIndex, error) {
	totalBytes, err := r.readU64()
	if err != nil {
		return nil, err
	}
	if totalBytes%12 != 0 {
		return nil, errors.New("marisa: malformed rank index vector frame")
	}
	raw, err := r.readRaw(int(totalBytes))
	if err != nil {
		return nil, err
	}
	out := make([]rankIndex, totalBytes/12)
	for i := range out {
		o := i * 12
		out[i] = rankIndex{
			abs:   binary.LittleEndian.Uint32(raw[o:]),
			relLo: binary.LittleEndian.Uint32(raw[o+4:]),
			relHi: binary.LittleEndian.Uint32(raw[o+8:]),
		}
	}
	if err := r.pad8(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ioReader) readCacheVector() ([]cacheSlot, error) {
	const recSize = 16
	totalBytes, err := r.readU64()
	if err != nil {
		return nil, err
	}
	if totalBytes%recSize != 0 {
		return nil, errors.New("marisa: malformed cache vector frame")
	}
	raw, err := r.readRaw(int(totalBytes))
	if err != nil {
		return nil, err
	}
	out := make([]cacheSlot, totalBytes/recSize)
	for i := range out {
		o := i * recSize
		out[i] = cacheSlot{
			parent: binary.LittleEndian.Uint32(raw[o:]),
			child:  binary.LittleEndian.Uint32(raw[o+4:]),
			base:   raw[o+8],
			extra:  binary.LittleEndian.Uint32(raw[o+12:]),
		}
	}
	if err := r.pad8(); err != nil {
		return nil, err
	}
	return out, nil
}

// writeBitVector serializes a bitVector frame (spec.md section 6.1).
func (w *ioWriter) writeBitVector(bv *bitVector) error {
	if err := w.writeU64Vector(bv.units); err != nil {
		return err
	}
	if err := w.writeU32(uint32(bv.size)); err != nil {
		return err
	}
	if err := w.writeU32(bv.num1s); err != nil {
		return err
	}
	if err := w.writeRankIndexVector(bv.ranks); err != nil {
		return err
	}
	if err := w.writeU32Vector(bv.select0s); err != nil {
		return err
	}
	if err := w.writeU32Vector(bv.select1s); err != nil {
		return err
	}
	return nil
}

func (r *ioReader) readBitVector() (*bitVector, error) {
	units, err := r.readU64Vector()
	if err != nil {
		return nil, err
	}
	sizeBits, err := r.readU32()
	if err != nil {
		return nil, err
	}
	num1s, err := r.readU32()
	if err != nil {
		return nil, err
	}
	ranks, err := r.readRankIndexVector()
	if err != nil {
		return nil, err
	}
	select0s, err := r.readU32Vector()
	if err != nil {
		return nil, err
	}
	select1s, err := r.readU32Vector()
	if err != nil {
		return nil, err
	}
	bv := &bitVector{
		units:      units,
		size:       int(sizeBits),
		num1s:      num1s,
		ranks:      ranks,
		select0s:   select0s,
		select1s:   select1s,
		built:      true,
		hasSelect0: len(select0s) > 0,
		hasSelect1: len(select1s) > 0,
	}
	return bv, nil
}

// writeFlatVector serializes a flatVector frame.
func (w *ioWriter) writeFlatVector(fv *flatVector) error {
	if err := w.writeU64Vector(fv.units); err != nil {
		return err
	}
	if err := w.writeU32(fv.valueSize); err != nil {
		return err
	}
	if err := w.writeU32(fv.mask); err != nil {
		return err
	}
	return w.writeU64(uint64(fv.size))
}

func (r *ioReader) readFlatVector() (*flatVector, error) {
	units, err := r.readU64Vector()
	if err != nil {
		return nil, err
	}
	valueSize, err := r.readU32()
	if err != nil {
		return nil, err
	}
	if valueSize > 32 {
		return nil, errors.Errorf("marisa: flat vector value_size %d exceeds 32", valueSize)
	}
	mask, err := r.readU32()
	if err != nil {
		return nil, err
	}
	size, err := r.readU64()
	if err != nil {
		return nil, err
	}
	return &flatVector{units: units, valueSize: valueSize, mask: mask, size: int(size)}, nil
}
