package database

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

func encodeValues(values []float32) ([]byte, error) {
	buffer := new(bytes.Buffer)
	if err := gob.NewEncoder(buffer).Encode(values); err != nil {
		return nil, fmt.Errorf("unable to encode values: %w", err)
	}
	return buffer.Bytes(), nil
}

func decodeValues(data []byte) ([]float32, error) {
	var values []float32
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
		return nil, fmt.Errorf("unable to decode values: %w", err)
	}
	return values, nil
}
