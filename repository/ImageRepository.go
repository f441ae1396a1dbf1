package repository

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"okpups/models"

	"github.com/google/uuid"
)

// ImageRepository stores uploaded listing images and hands back the public
// URLs recorded on the entity. The asset host contract stops at "a URL that
// serves the bytes"; here that host is the service itself under /uploads/.
type ImageRepository interface {
	SaveImages(files []*multipart.FileHeader) (urls []string, err error)
	RemoveImages(urls []string)
}

type ImageRepo struct {
	dir     string
	baseURL string
}

func NewImageRepository(dir string, baseURL string) (ImageRepository, error) {
	if dir == "" {
		return nil, errors.New("dir must be non-empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ImageRepo{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (i *ImageRepo) SaveImages(files []*multipart.FileHeader) (urls []string, err error) {
	for _, fh := range files {
		var url string
		url, err = i.saveOne(fh)
		if err != nil {
			i.RemoveImages(urls)
			urls = nil
			return
		}
		urls = append(urls, url)
	}
	return
}

func (i *ImageRepo) saveOne(fh *multipart.FileHeader) (url string, err error) {
	src, e := fh.Open()
	if e != nil {
		log.Printf("saveOne: %v", e)
		err = models.ErrBadRequest
		return
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, e := os.Create(filepath.Join(i.dir, name))
	if e != nil {
		log.Printf("saveOne: %v", e)
		err = models.ErrServerError
		return
	}
	defer dst.Close()
	if _, e = io.Copy(dst, src); e != nil {
		log.Printf("saveOne: %v", e)
		err = models.ErrServerError
		return
	}
	url = i.baseURL + "/uploads/" + name
	return
}

// RemoveImages is best effort: a leftover file on disk is harmless, a
// failed delete must not fail the entity update that triggered it.
func (i *ImageRepo) RemoveImages(urls []string) {
	for _, u := range urls {
		name := path.Base(u)
		if name == "" || name == "." || name == "/" {
			continue
		}
		if err := os.Remove(filepath.Join(i.dir, name)); err != nil && !os.IsNotExist(err) {
			log.Printf("RemoveImages: %v", err)
		}
	}
}
