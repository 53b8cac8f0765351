package backend

import (
	"context"
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/common"
)

func writeImage(t *testing.T, path string, shade uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			img.SetGray(x, y, color.Gray{Y: shade + uint8(x*y)})
		}
	}
	file, err := os.Create(path)
	require.Nil(t, err)
	defer file.Close()
	require.Nil(t, png.Encode(file, img))
}

func TestInitializeServices(t *testing.T) {
	brokers := InitializeEventBrokers(10)
	defer brokers.Close()

	t.Run("Defaults", func(t *testing.T) {
		a := require.New(t)
		params, err := common.ParseParams("test", []string{"a.png"}, io.Discard)
		a.Nil(err)

		services, err := InitializeServices(params, brokers)

		a.Nil(err)
		a.Equal(64, services.Fingerprinter.Size)
		a.NotNil(services.ImageLoader)
		a.NotNil(services.FingerprintCalculator)
	})

	t.Run("Debug directory", func(t *testing.T) {
		a := require.New(t)
		debugDir := filepath.Join(t.TempDir(), "debug")
		params, err := common.ParseParams("test", []string{"-debugDir", debugDir, "a.png"}, io.Discard)
		a.Nil(err)

		_, err = InitializeServices(params, brokers)

		a.Nil(err)
		a.DirExists(debugDir)
	})

	t.Run("Invalid size", func(t *testing.T) {
		a := require.New(t)
		params, err := common.ParseParams("test", []string{"-size", "0", "a.png"}, io.Discard)
		a.Nil(err)

		_, err = InitializeServices(params, brokers)

		a.NotNil(err)
	})
}

func TestStores_Persist(t *testing.T) {
	a := require.New(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.png")
	writeImage(t, first, 10)
	writeImage(t, second, 100)

	brokers := InitializeEventBrokers(10)
	defer brokers.Close()
	params, err := common.ParseParams("test", []string{"-size", "8", first, second, first}, io.Discard)
	a.Nil(err)
	services, err := InitializeServices(params, brokers)
	a.Nil(err)

	imageFiles := []*apitype.ImageFile{
		apitype.NewImageFile(first),
		apitype.NewImageFile(second),
		apitype.NewImageFile(first),
		apitype.NewImageFile(filepath.Join(dir, "missing.png")),
	}
	results, err := services.FingerprintCalculator.CalculateFingerprints(context.Background(), imageFiles)
	a.Nil(err)
	distances, err := services.FingerprintCalculator.CalculateDistances(context.Background(), results)
	a.Nil(err)
	a.Len(distances, 3)

	stores, err := InitializeStores(filepath.Join(dir, "test.db"))
	a.Nil(err)
	defer stores.Close()

	runId, err := stores.Persist(params.PatternSize(), params.Resampler(), results, distances)
	a.Nil(err)

	count, err := stores.ImageStore.GetImageCount()
	a.Nil(err)
	a.Equal(uint64(2), count)

	stored, err := stores.DistanceStore.GetDistances(runId)
	a.Nil(err)
	a.Len(stored, 3)
	a.Equal(stored[1].ImageId, stored[1].OtherImageId)
	a.Equal(float32(0), stored[1].Distances.Pattern)

	run, err := stores.DistanceStore.GetRun(runId)
	a.Nil(err)
	a.Equal(8, run.PatternSize)
	a.Equal("linear", run.Resampler)
}
