package mjpegavi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Demuxer walks the movi list of a RIFF AVI file and yields the raw JPEG
// payload of each video chunk. Only MJPEG-in-AVI sources are supported;
// anything else fails at open or at frame decode.
type Demuxer struct {
	r   io.ReadSeeker
	end int64 // absolute offset where the movi list ends
}

// NewDemuxer validates the RIFF header and positions the reader at the
// first chunk of the movi list.
func NewDemuxer(r io.ReadSeeker) (*Demuxer, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read riff header: %w", err)
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "AVI " {
		return nil, errors.New("not a riff avi file")
	}

	for {
		id, size, err := readChunkHeader(r)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, errors.New("no movi list found")
			}
			return nil, err
		}
		if id == "LIST" {
			var typ [4]byte
			if _, err := io.ReadFull(r, typ[:]); err != nil {
				return nil, fmt.Errorf("read list type: %w", err)
			}
			if string(typ[:]) == "movi" {
				pos, err := r.Seek(0, io.SeekCurrent)
				if err != nil {
					return nil, err
				}
				return &Demuxer{r: r, end: pos + int64(size) - 4}, nil
			}
			if err := skip(r, int64(size)-4+pad(size)); err != nil {
				return nil, err
			}
			continue
		}
		if err := skip(r, int64(size)+pad(size)); err != nil {
			return nil, err
		}
	}
}

// Next returns the payload of the next video frame chunk, or io.EOF when
// the movi list is exhausted.
func (d *Demuxer) Next() ([]byte, error) {
	for {
		pos, err := d.r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
		if pos >= d.end {
			return nil, io.EOF
		}
		id, size, err := readChunkHeader(d.r)
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = io.EOF
			}
			return nil, err
		}
		// 'rec ' grouping lists nest plain chunks; descend into them.
		if id == "LIST" {
			if err := skip(d.r, 4); err != nil {
				return nil, err
			}
			continue
		}
		// Stream chunk ids are '##dc' (compressed) or '##db' (uncompressed).
		if strings.HasSuffix(id, "dc") || strings.HasSuffix(id, "db") {
			buf := make([]byte, size)
			if _, err := io.ReadFull(d.r, buf); err != nil {
				return nil, fmt.Errorf("read frame chunk: %w", err)
			}
			if err := skip(d.r, pad(size)); err != nil {
				return nil, err
			}
			return buf, nil
		}
		if err := skip(d.r, int64(size)+pad(size)); err != nil {
			return nil, err
		}
	}
}

func readChunkHeader(r io.Reader) (string, uint32, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return "", 0, err
	}
	return string(hdr[0:4]), binary.LittleEndian.Uint32(hdr[4:8]), nil
}

func skip(r io.ReadSeeker, n int64) error {
	if n <= 0 {
		return nil
	}
	_, err := r.Seek(n, io.SeekCurrent)
	return err
}

// Chunk payloads are padded to even sizes.
func pad(size uint32) int64 {
	return int64(size % 2)
}
