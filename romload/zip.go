package romload

import (
	"archive/zip"
	"path/filepath"

	"github.com/pkg/errors"
)

func fromZIP(path string) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "open zip")
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isROM(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", errors.Wrapf(err, "open %s", f.Name)
		}
		defer rc.Close()

		data, err := limitedRead(rc)
		if err != nil {
			return nil, "", errors.Wrapf(err, "read %s", f.Name)
		}
		return data, filepath.Base(f.Name), nil
	}

	return nil, "", ErrNoROMFile
}
