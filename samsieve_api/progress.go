package samsieve_api

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
)

// progressReader reports the bytes consumed from a file on stderr
type progressReader struct {
	io.Reader
	file *os.File
	bar  *pb.ProgressBar
}

func withProgress(file *os.File) (io.ReadCloser, error) {
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "failed to stat %s", file.Name())
	}
	bar := pb.Full.Start64(info.Size())
	bar.Set(pb.Bytes, true)
	return &progressReader{
		Reader: bar.NewProxyReader(file),
		file:   file,
		bar:    bar,
	}, nil
}

func (p *progressReader) Close() error {
	p.bar.Finish()
	return p.file.Close()
}
