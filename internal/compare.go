package internal

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// hashChunkSize bounds each read while digesting a file. The value is a
// tuning knob, not part of the comparison contract.
const hashChunkSize = 64 * 1024

// fileHash computes the SHA256 digest of a file's content in bounded chunks.
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FilesEqual compares two files, cheap check first: different sizes can
// never be equal and need no I/O. Equal sizes escalate to a full content
// digest of both files.
func FilesEqual(pathA, pathB string) (bool, error) {
	infoA, err := os.Stat(pathA)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	hashA, err := fileHash(pathA)
	if err != nil {
		return false, err
	}
	hashB, err := fileHash(pathB)
	if err != nil {
		return false, err
	}
	return hashA == hashB, nil
}
