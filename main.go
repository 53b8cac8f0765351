package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"vincit.fi/imgsmlr/api"
	"vincit.fi/imgsmlr/api/apitype"
	"vincit.fi/imgsmlr/backend"
	"vincit.fi/imgsmlr/backend/library"
	"vincit.fi/imgsmlr/common"
	"vincit.fi/imgsmlr/common/logger"
)

const eventBusQueueSize = 1000

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitCode := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode)
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	params, err := common.ParseParams("imgsmlr", args, stderr)
	if err != nil {
		return 1
	}
	logger.Initialize(logger.StringToLogLevel(params.LogLevel()))

	imageFiles := make([]*apitype.ImageFile, len(params.Files()))
	for i, path := range params.Files() {
		if !apitype.IsSupported(path) {
			fmt.Fprintf(stderr, "Unknown image extension: %s\n", path)
			return 1
		}
		imageFiles[i] = apitype.NewImageFileWithId(apitype.ImageId(i), path)
	}

	brokers := backend.InitializeEventBrokers(eventBusQueueSize)
	defer brokers.Close()
	brokers.Broker.Subscribe(api.ProcessStatusUpdated, func(command *api.UpdateProgressCommand) {
		logger.Debug.Printf("Progress %s: %d/%d", command.Name, command.Current, command.Total)
	})

	services, err := backend.InitializeServices(params, brokers)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	calculator := services.FingerprintCalculator
	results, err := calculator.CalculateFingerprints(ctx, imageFiles)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if params.Print() {
		printFingerprints(stdout, results)
	}

	distances, err := calculator.CalculateDistances(ctx, results)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, distance := range distances {
		fmt.Fprintln(stdout, distance.String())
	}

	if params.DbPath() != "" {
		if err := persist(params, results, distances); err != nil {
			fmt.Fprintf(stderr, "Could not store results into '%s': %s\n", params.DbPath(), err)
			return 1
		}
	}

	failed := 0
	for _, result := range results {
		if result.Err() != nil {
			fmt.Fprintf(stderr, "Could not process '%s': %s\n", result.ImageFile().Path(), result.Err())
			failed++
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func persist(params *common.Params, results []*library.FingerprintResult, distances []*library.ImageDistance) error {
	stores, err := backend.InitializeStores(params.DbPath())
	if err != nil {
		return err
	}
	defer stores.Close()

	_, err = stores.Persist(params.PatternSize(), params.Resampler(), results, distances)
	return err
}

func printFingerprints(out io.Writer, results []*library.FingerprintResult) {
	for _, result := range results {
		if result.Err() != nil {
			continue
		}
		fingerprint := result.Fingerprint()
		fmt.Fprintf(out, "%s:\n", result.ImageFile().Path())
		fmt.Fprintf(out, "pattern: %s\n", fingerprint.Pattern)
		fmt.Fprintf(out, "shuffled pattern: %s\n", fingerprint.ShuffledPattern)
		fmt.Fprintf(out, "signature: %s\n", fingerprint.Signature)
		fmt.Fprintf(out, "shuffled signature: %s\n", fingerprint.ShuffledSignature)
	}
}
