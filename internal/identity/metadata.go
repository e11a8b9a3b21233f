// Package identity fingerprints discovered files: filesystem attributes
// plus streaming content digests, combined into one immutable record per
// file.
package identity

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"math"
	"os"
	"path/filepath"
)

// TimeLayout is the fixed-width local-time format used everywhere in
// reports, chosen so repeated runs diff cleanly.
const TimeLayout = "2006-01-02 15:04:05"

// FileIdentity is the per-file identity record. It is computed once per
// discovered file and never mutated. Digest fields carry an "error: ..."
// string when the read failed mid-stream; they are never silently omitted.
type FileIdentity struct {
	Filename  string  `json:"filename"`
	FullPath  string  `json:"full_path"`
	SizeBytes int64   `json:"size_bytes"`
	SizeMB    float64 `json:"size_mb"`
	Created   string  `json:"created"`
	Modified  string  `json:"modified"`
	Accessed  string  `json:"accessed"`
	MD5       string  `json:"md5"`
	SHA1      string  `json:"sha1"`
	SHA256    string  `json:"sha256"`
}

// Collect stats the file and computes its three digests. Only a failed stat
// is an error; digest failures are recorded inside the returned record.
func Collect(path string) (FileIdentity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileIdentity{}, err
	}

	created, accessed := statTimes(path, info.ModTime())
	return FileIdentity{
		Filename:  filepath.Base(path),
		FullPath:  path,
		SizeBytes: info.Size(),
		SizeMB:    math.Round(float64(info.Size())/(1024*1024)*100) / 100,
		Created:   created.Format(TimeLayout),
		Modified:  info.ModTime().Format(TimeLayout),
		Accessed:  accessed.Format(TimeLayout),
		MD5:       digestOrError(path, md5.New()),
		SHA1:      digestOrError(path, sha1.New()),
		SHA256:    digestOrError(path, sha256.New()),
	}, nil
}
