package romload

import (
	"io"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
	"github.com/pkg/errors"
)

func fromRAR(path string) ([]byte, string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "open rar")
	}
	defer r.Close()

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", errors.Wrap(err, "read rar entry")
		}

		if hdr.IsDir || !isROM(hdr.Name) {
			continue
		}

		data, err := limitedRead(r)
		if err != nil {
			return nil, "", errors.Wrapf(err, "read %s", hdr.Name)
		}
		return data, filepath.Base(hdr.Name), nil
	}

	return nil, "", ErrNoROMFile
}
