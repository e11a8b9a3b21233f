package identity

import (
	"encoding/hex"
	"hash"
	"io"
	"os"
)

// hashChunkSize is the read granularity for digest streaming. Evidence
// files can be multi-gigabyte, so the file is never held in memory.
const hashChunkSize = 4096

// hashFile streams the file through h in fixed-size chunks and returns the
// lowercase hex digest.
func hashFile(path string, h hash.Hash) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }() // read-only handle

	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// digestOrError formats a mid-stream read failure into the identity record
// instead of dropping the field; the caller keeps processing other files.
func digestOrError(path string, h hash.Hash) string {
	s, err := hashFile(path, h)
	if err != nil {
		return "error: " + err.Error()
	}
	return s
}
