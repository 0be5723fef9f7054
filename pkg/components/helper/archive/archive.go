package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// ExtractTarGz extracts regular files and directories to targetPath and returns the name
// of the archive's top level directory.
func ExtractTarGz(rc io.Reader, targetPath string) (string, error) {
	gzipReader, err := gzip.NewReader(rc)
	if err != nil {
		return "", err
	}
	defer gzipReader.Close()
	tarReader := tar.NewReader(gzipReader)
	var rootDir string
	for {
		tarHeader, err := tarReader.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		if tarHeader.Typeflag != tar.TypeDir && tarHeader.Typeflag != tar.TypeReg {
			continue
		}
		name := path.Clean(tarHeader.Name)
		if !fs.ValidPath(name) {
			return "", fmt.Errorf("invalid path '%s'", tarHeader.Name)
		}
		if rootDir == "" {
			rootDir = strings.Split(name, "/")[0]
		}
		if tarHeader.Typeflag == tar.TypeDir {
			if err = os.MkdirAll(path.Join(targetPath, name), 0775); err != nil {
				return "", err
			}
			continue
		}
		if err = os.MkdirAll(path.Join(targetPath, path.Dir(name)), 0775); err != nil {
			return "", err
		}
		if err = writeFile(path.Join(targetPath, name), tarHeader.Mode, tarReader); err != nil {
			return "", err
		}
	}
	return rootDir, nil
}

func writeFile(name string, mode int64, reader *tar.Reader) error {
	file, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fs.FileMode(mode)&fs.ModePerm|0600)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, reader)
	if err != nil {
		return err
	}
	return nil
}
