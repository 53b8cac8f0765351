package apitype

import (
	"fmt"
	"path/filepath"
	"strings"
)

type ImageId int64

const NoImage = ImageId(-1)

type ImageFormat string

const (
	UnknownFormat ImageFormat = ""
	JpegFormat    ImageFormat = "jpeg"
	PngFormat     ImageFormat = "png"
	GifFormat     ImageFormat = "gif"
)

var supportedFileEndings = map[string]ImageFormat{
	".jpg":  JpegFormat,
	".jpeg": JpegFormat,
	".png":  PngFormat,
	".gif":  GifFormat,
}

type ImageFile struct {
	id        ImageId
	directory string
	filename  string
	path      string
	format    ImageFormat
}

func NewImageFileWithId(id ImageId, path string) *ImageFile {
	directory, filename := filepath.Split(path)
	return &ImageFile{
		id:        id,
		directory: directory,
		filename:  filename,
		path:      path,
		format:    FormatOf(path),
	}
}

func NewImageFile(path string) *ImageFile {
	return NewImageFileWithId(NoImage, path)
}

// FormatOf resolves the image format from the file extension, ignoring
// case.
func FormatOf(path string) ImageFormat {
	return supportedFileEndings[strings.ToLower(filepath.Ext(path))]
}

func IsSupported(path string) bool {
	return FormatOf(path) != UnknownFormat
}

func (s *ImageFile) IsValid() bool {
	return s != nil && s.path != ""
}

func (s *ImageFile) Id() ImageId {
	if s != nil {
		return s.id
	} else {
		return NoImage
	}
}

func (s *ImageFile) WithId(id ImageId) *ImageFile {
	return &ImageFile{
		id:        id,
		directory: s.directory,
		filename:  s.filename,
		path:      s.path,
		format:    s.format,
	}
}

func (s *ImageFile) Directory() string {
	return s.directory
}

func (s *ImageFile) FileName() string {
	return s.filename
}

func (s *ImageFile) Path() string {
	return s.path
}

func (s *ImageFile) Format() ImageFormat {
	return s.format
}

func (s *ImageFile) String() string {
	if s == nil {
		return "ImageFile<nil>"
	} else if !s.IsValid() {
		return "ImageFile<invalid>"
	}
	return fmt.Sprintf("ImageFile{%s}", s.path)
}
