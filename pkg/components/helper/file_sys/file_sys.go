package file_sys

import (
	"io"
	"io/fs"
	"os"
	"path"
)

func CopyFile(fSys fs.FS, dstPath, srcPath string) error {
	src, err := fSys.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()
	fileInfo, err := src.Stat()
	if err != nil {
		return err
	}
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileInfo.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	if err != nil {
		return err
	}
	return dst.Sync()
}

func CopyAll(fSys fs.FS, dstPath string) error {
	return fs.WalkDir(fSys, ".", func(currentPath string, dirEntry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if dirEntry.IsDir() {
			err = os.Mkdir(path.Join(dstPath, currentPath), 0775)
			if err != nil && !os.IsExist(err) {
				return err
			}
		} else if dirEntry.Type().IsRegular() {
			return CopyFile(fSys, path.Join(dstPath, currentPath), currentPath)
		}
		return nil
	})
}

// WriteFile writes data to a temporary file next to name and renames it into place.
func WriteFile(name string, data []byte) error {
	tmpName := name + ".tmp"
	file, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0664)
	if err != nil {
		return err
	}
	if _, err = file.Write(data); err != nil {
		file.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err = file.Sync(); err != nil {
		file.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err = file.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, name)
}

func IsDir(p string) (bool, error) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// SyncDir flushes directory entries, so renames inside the directory survive a power cut.
func SyncDir(p string) error {
	dir, err := os.Open(p)
	if err != nil {
		return err
	}
	defer dir.Close()
	return dir.Sync()
}
