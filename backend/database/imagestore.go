package database

import (
	"errors"
	"github.com/upper/db/v4"
	"os"
	"time"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/common/logger"
)

type ImageFileConverter interface {
	ImageFileToDbImage(*apitype.ImageFile) (*Image, error)
}

type FileSystemImageFileConverter struct {
	ImageFileConverter
}

func (s *FileSystemImageFileConverter) ImageFileToDbImage(imageFile *apitype.ImageFile) (*Image, error) {
	fileStat, err := os.Stat(imageFile.Path())
	if err != nil {
		return nil, err
	}

	return &Image{
		Path:         imageFile.Path(),
		FileName:     imageFile.FileName(),
		Directory:    imageFile.Directory(),
		ByteSize:     fileStat.Size(),
		ModifiedTime: fileStat.ModTime(),
	}, nil
}

type ImageStore struct {
	database           *Database
	collection         db.Collection
	imageFileConverter ImageFileConverter
}

func NewImageStore(database *Database, imageFileConverter ImageFileConverter) *ImageStore {
	return &ImageStore{
		database:           database,
		imageFileConverter: imageFileConverter,
	}
}

func (s *ImageStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("image")
	}
	return s.collection
}

func (s *ImageStore) getCollectionForSession(session db.Session) db.Collection {
	return session.Collection(s.getCollection().Name())
}

// AddImages adds all images in one transaction and returns them with the
// IDs they have in the database.
func (s *ImageStore) AddImages(imageFiles []*apitype.ImageFile) ([]*apitype.ImageFile, error) {
	added := make([]*apitype.ImageFile, len(imageFiles))
	err := s.database.DoInTransaction(func(session db.Session) error {
		for i, imageFile := range imageFiles {
			imageFileWithId, err := s.addImage(session, imageFile)
			if err != nil {
				logger.Error.Printf("Error while adding image '%s' to DB", imageFile.Path())
				return err
			}
			added[i] = imageFileWithId
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// AddImage inserts the image or, when an image with the same path exists,
// updates its file information.
func (s *ImageStore) AddImage(imageFile *apitype.ImageFile) (*apitype.ImageFile, error) {
	return s.addImage(s.database.Session(), imageFile)
}

func (s *ImageStore) addImage(session db.Session, imageFile *apitype.ImageFile) (*apitype.ImageFile, error) {
	collection := s.getCollectionForSession(session)
	logger.Trace.Printf("Adding image '%s'", imageFile.String())

	startTime := time.Now()
	image, err := s.imageFileConverter.ImageFileToDbImage(imageFile)
	if err != nil {
		return nil, err
	}
	logger.Trace.Printf(" - Loaded file info in %s", time.Since(startTime))

	var existing Image
	err = collection.Find(db.Cond{"path": imageFile.Path()}).One(&existing)
	if errors.Is(err, db.ErrNoMoreRows) {
		insertStart := time.Now()
		if _, err := collection.Insert(image); err != nil {
			return nil, err
		}
		logger.Trace.Printf(" - Added image to DB in %s", time.Since(insertStart))
	} else if err != nil {
		return nil, err
	} else {
		logger.Trace.Printf(" - Image exists with ID %d, updating", existing.Id)
		image.Id = existing.Id
		if err := collection.Find(db.Cond{"id": existing.Id}).Update(image); err != nil {
			return nil, err
		}
	}

	return s.findByPath(collection, imageFile.Path())
}

func (s *ImageStore) FindByPath(path string) (*apitype.ImageFile, error) {
	return s.findByPath(s.getCollection(), path)
}

func (s *ImageStore) findByPath(collection db.Collection, path string) (*apitype.ImageFile, error) {
	var image Image
	if err := collection.Find(db.Cond{"path": path}).One(&image); err != nil {
		return nil, err
	}
	return toImageFile(&image), nil
}

func (s *ImageStore) GetImageCount() (uint64, error) {
	return s.getCollection().Count()
}

func toImageFile(image *Image) *apitype.ImageFile {
	return apitype.NewImageFileWithId(image.Id, image.Path)
}
