// Package mgz decodes FreeSurfer MGH/MGZ anatomical volumes.
//
// The format is a fixed 284-byte big-endian header followed by the voxel
// data, x varying fastest. MGZ files are the same layout gzip-compressed.
// Only the first frame is read; reports never display time series volumes.
package mgz

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"neuroreport/pkg/errors"
	"neuroreport/pkg/volume"
)

const headerSize = 284

// Voxel data types, per mgh(5).
const (
	typeUChar = 0
	typeInt   = 1
	typeFloat = 3
	typeShort = 4
)

// maxVoxels guards against corrupt headers demanding absurd allocations.
const maxVoxels = 1 << 27

// Reader implements readers.VolumeReader for .mgz and .mgh files.
type Reader struct{}

func (Reader) ReadVolume(path string) (*volume.Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReaderFailure, err, "open %s", path)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".mgz") || strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeReaderFailure, err, "decompress %s", path)
		}
		defer zr.Close()
		src = zr
	}

	vol, err := decode(bufio.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReaderFailure, err, "decode %s", path)
	}
	return vol, nil
}

func decode(r io.Reader) (*volume.Volume, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, err
	}

	be := binary.BigEndian
	version := int32(be.Uint32(hdr[0:]))
	if version != 1 {
		return nil, errors.New(errors.ErrCodeUnsupported, "mgh version %d", version)
	}
	width := int(int32(be.Uint32(hdr[4:])))
	height := int(int32(be.Uint32(hdr[8:])))
	depth := int(int32(be.Uint32(hdr[12:])))
	dtype := int32(be.Uint32(hdr[20:]))

	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, errors.New(errors.ErrCodeReaderFailure, "bad dimensions %dx%dx%d", width, height, depth)
	}
	n := width * height * depth
	if n > maxVoxels {
		return nil, errors.New(errors.ErrCodeReaderFailure, "volume too large: %d voxels", n)
	}

	vals, err := readVoxels(r, dtype, n)
	if err != nil {
		return nil, err
	}

	vol := volume.New(width, height, depth)
	i := 0
	for z := 0; z < depth; z++ {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				vol.Set(x, y, z, vals[i])
				i++
			}
		}
	}
	return vol, nil
}

// readVoxels reads the first frame's n values as float64.
func readVoxels(r io.Reader, dtype int32, n int) ([]float64, error) {
	be := binary.BigEndian
	vals := make([]float64, n)

	switch dtype {
	case typeUChar:
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		for i, b := range buf {
			vals[i] = float64(b)
		}
	case typeShort:
		buf := make([]byte, 2*n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			vals[i] = float64(int16(be.Uint16(buf[2*i:])))
		}
	case typeInt:
		buf := make([]byte, 4*n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			vals[i] = float64(int32(be.Uint32(buf[4*i:])))
		}
	case typeFloat:
		buf := make([]byte, 4*n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			vals[i] = float64(math.Float32frombits(be.Uint32(buf[4*i:])))
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "voxel type %d", dtype)
	}
	return vals, nil
}
