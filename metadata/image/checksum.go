package image

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/minio/highwayhash"
)

const trailerPrefix = "# highwayhash64: "

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash computes highwayhash-64 of the data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

func appendTrailer(body []byte) ([]byte, error) {
	sum, err := Hash(body)
	if err != nil {
		return nil, err
	}
	trailer := fmt.Sprintf("%s%016x\n", trailerPrefix, sum)
	return append(body, trailer...), nil
}

// splitTrailer verifies integrity trailer and returns document body
func splitTrailer(data []byte) ([]byte, error) {
	data = bytes.TrimRight(data, "\n")
	idx := bytes.LastIndexByte(data, '\n')
	if idx == -1 {
		return nil, fmt.Errorf("%w: missing trailer", ErrChecksum)
	}
	body, line := data[:idx+1], string(data[idx+1:])
	if len(line) <= len(trailerPrefix) || line[:len(trailerPrefix)] != trailerPrefix {
		return nil, fmt.Errorf("%w: missing trailer", ErrChecksum)
	}
	expected, err := strconv.ParseUint(line[len(trailerPrefix):], 16, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trailer %q", ErrChecksum, line)
	}
	actual, err := Hash(body)
	if err != nil {
		return nil, err
	}
	if actual != expected {
		return nil, fmt.Errorf("%w: expected %016x, but had %016x", ErrChecksum, expected, actual)
	}
	return body, nil
}
