package backend

import (
	"fmt"
	"vincit.fi/imgsmlr/api"
	"vincit.fi/imgsmlr/backend/database"
	"vincit.fi/imgsmlr/backend/debugdump"
	"vincit.fi/imgsmlr/backend/imageloader"
	"vincit.fi/imgsmlr/backend/library"
	"vincit.fi/imgsmlr/common"
	"vincit.fi/imgsmlr/common/event"
	"vincit.fi/imgsmlr/common/logger"
	"vincit.fi/imgsmlr/pattern"
)

type Stores struct {
	ImageStore       *database.ImageStore
	FingerprintStore *database.FingerprintStore
	DistanceStore    *database.DistanceStore
	database         *database.Database
}

func (s *Stores) Close() {
	s.database.Close()
}

type Services struct {
	ImageLoader           api.ImageLoader
	Fingerprinter         *pattern.Fingerprinter
	FingerprintCalculator *library.FingerprintCalculator
}

type Brokers struct {
	Broker *event.Broker
}

func (s *Brokers) Close() {
	s.Broker.Close()
}

func InitializeEventBrokers(eventBusQueueSize int) *Brokers {
	logger.Debug.Printf("Initialize event brokers...")
	brokers := &Brokers{
		Broker: event.InitBus(eventBusQueueSize),
	}
	logger.Debug.Printf("Event brokers initialized")
	return brokers
}

// InitializeServices builds the fingerprint pipeline. Invalid pattern
// sizes and resampler names are reported as errors.
func InitializeServices(params *common.Params, brokers *Brokers) (*Services, error) {
	logger.Debug.Printf("Initialize services...")
	resampler, err := imageloader.ResamplerByName(params.Resampler())
	if err != nil {
		return nil, err
	}

	var observer pattern.Observer = pattern.NopObserver{}
	if params.DebugDir() != "" {
		if observer, err = debugdump.NewImageObserver(params.DebugDir()); err != nil {
			return nil, fmt.Errorf("could not create debug directory: %w", err)
		}
		logger.Info.Printf("Writing debug images to '%s'", params.DebugDir())
	}

	fingerprinter, err := pattern.NewFingerprinter(params.PatternSize(), observer)
	if err != nil {
		return nil, err
	}

	imageLoader := imageloader.NewImageLoader(resampler)
	progressReporter := api.NewSenderProgressReporter(brokers.Broker)
	services := &Services{
		ImageLoader:           imageLoader,
		Fingerprinter:         fingerprinter,
		FingerprintCalculator: library.NewFingerprintCalculator(imageLoader, fingerprinter, progressReporter, params.ThreadCount()),
	}
	logger.Debug.Printf("Services initialized")
	return services, nil
}

// InitializeStores opens and migrates the database file.
func InitializeStores(databaseFile string) (*Stores, error) {
	logger.Debug.Printf("Initialize database...")
	db := database.NewDatabase()
	if err := db.InitializeForFile(databaseFile); err != nil {
		return nil, err
	}
	if _, err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return NewStores(db, &database.FileSystemImageFileConverter{}), nil
}

func NewStores(db *database.Database, imageFileConverter database.ImageFileConverter) *Stores {
	logger.Debug.Printf("Initialize backend stores...")
	stores := &Stores{
		ImageStore:       database.NewImageStore(db, imageFileConverter),
		FingerprintStore: database.NewFingerprintStore(db),
		DistanceStore:    database.NewDistanceStore(db),
		database:         db,
	}
	logger.Debug.Printf("Stores and databases initialized")
	return stores
}
