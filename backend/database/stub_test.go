package database

import (
	"time"
	"vincit.fi/imgsmlr/api/apitype"
)

type StubImageFileConverter struct {
	ImageFileConverter

	byteSize    int64
	currentTime time.Time
}

func (s *StubImageFileConverter) ImageFileToDbImage(imageFile *apitype.ImageFile) (*Image, error) {
	s.byteSize += 1000
	s.currentTime = s.currentTime.Add(time.Second)
	return &Image{
		Path:         imageFile.Path(),
		FileName:     imageFile.FileName(),
		Directory:    imageFile.Directory(),
		ByteSize:     s.byteSize,
		ModifiedTime: s.currentTime,
	}, nil
}
