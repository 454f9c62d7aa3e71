// Package fsutil holds small filesystem helpers shared by the classifier
// and the rollback engine.
package fsutil

import (
	"io"
	"os"
)

// Move renames src to dst, falling back to copy+delete when rename fails
// (typically a cross-filesystem move).
func Move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	return copyAndRemove(src, dst)
}

// copyAndRemove copies src to dst, carrying over the source permission
// bits, then removes src.
func copyAndRemove(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		in.Close()
		return err
	}

	_, copyErr := io.Copy(out, in)
	in.Close()
	if closeErr := out.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr == nil {
		// OpenFile's mode is subject to the umask.
		copyErr = os.Chmod(dst, info.Mode().Perm())
	}
	if copyErr != nil {
		os.Remove(dst)
		return copyErr
	}

	return os.Remove(src)
}
