package server

import (
	"image"
	"mime/multipart"
)

// uploadSource adapts multipart uploads to the batch source interface.
type uploadSource struct {
	files []*multipart.FileHeader
}

func (u *uploadSource) Count() int {
	return len(u.files)
}

func (u *uploadSource) Name(i int) string {
	return u.files[i].Filename
}

func (u *uploadSource) Image(i int) (image.Image, string, error) {
	return decodeUpload(u.files[i])
}

func (u *uploadSource) Close() error {
	return nil
}
