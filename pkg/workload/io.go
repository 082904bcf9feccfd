package workload

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const ioChunkSize = 100

// IOBurst creates fileCount files of fileSizeKB in dir. Each file is written
// in small chunks and fsynced, read back one byte at a time and deleted.
// It is meant to be slow. Returns the number of files processed.
func IOBurst(dir string, fileCount, fileSizeKB int) (int, error) {
	chunk := bytes.Repeat([]byte{'A'}, ioChunkSize)
	writes := fileSizeKB * 1024 / ioChunkSize

	for i := 0; i < fileCount; i++ {
		name := filepath.Join(dir, "batben-"+uuid.NewString()+".txt")

		if err := writeFileSlowly(name, chunk, writes); err != nil {
			return i, err
		}
		if err := readFileSlowly(name); err != nil {
			return i, err
		}
		if err := os.Remove(name); err != nil {
			return i, pkgerrors.Wrapf(err, "failed to remove %s", name)
		}
	}

	return fileCount, nil
}

func writeFileSlowly(name string, chunk []byte, writes int) error {
	f, err := os.Create(name)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create %s", name)
	}
	defer f.Close()

	for i := 0; i < writes; i++ {
		if _, err := f.Write(chunk); err != nil {
			return pkgerrors.Wrapf(err, "failed to write %s", name)
		}
	}
	// Force the data to disk, that is the point.
	if err := f.Sync(); err != nil {
		return pkgerrors.Wrapf(err, "failed to sync %s", name)
	}

	return f.Close()
}

func readFileSlowly(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open %s", name)
	}
	defer f.Close()

	b := make([]byte, 1)
	for {
		_, err := f.Read(b)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to read %s", name)
		}
	}
}

// IO repeats I/O bursts in a scratch directory that is removed afterwards.
type IO struct {
	Params
}

func (w *IO) Name() string { return NameIO }

func (w *IO) Run(d time.Duration) (Summary, error) {
	dir, err := os.MkdirTemp(w.TempDir, "batben-io-")
	if err != nil {
		return Summary{Workload: NameIO}, pkgerrors.Wrap(err, "failed to create scratch directory")
	}
	defer removeScratch(dir)

	r := &Repeat{name: NameIO, burst: func() (BurstStats, error) { return w.ioBurst(dir) }}
	return r.Run(d)
}

// removeScratch cleans up a scratch directory. Failures are not critical.
func removeScratch(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		logrus.Debugf("failed to remove scratch directory %s: %v", dir, err)
	}
}
