package romload

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// fromGzip reads a gzipped image, or the first ROM entry of a gzipped tarball.
func fromGzip(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", errors.Wrap(err, "open gzip")
	}
	defer gr.Close()

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz") {
		return fromTar(gr)
	}

	data, err := limitedRead(gr)
	if err != nil {
		return nil, "", errors.Wrap(err, "decompress")
	}

	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		name = name[:len(name)-3]
	}
	return data, name, nil
}

func fromTar(r io.Reader) ([]byte, string, error) {
	tr := tar.NewReader(r)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", errors.Wrap(err, "read tar entry")
		}

		if hdr.Typeflag != tar.TypeReg || !isROM(hdr.Name) {
			continue
		}

		data, err := limitedRead(tr)
		if err != nil {
			return nil, "", errors.Wrapf(err, "read %s", hdr.Name)
		}
		return data, filepath.Base(hdr.Name), nil
	}

	return nil, "", ErrNoROMFile
}
