package server

import (
	"io/fs"
	"net/http"
)

// fileOnlyFS serves regular files and reports directories as missing,
// so /assets/ never renders a listing.
type fileOnlyFS struct {
	root http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
