package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a report previously produced by [WriteJSON]. Unknown
// fields are ignored so reports written by newer versions still load.
// The reader is left open.
func ReadJSON(r io.Reader) (Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return rep, nil
}

// ImportJSON loads a report file written by Export or the --output flag.
func ImportJSON(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	return ReadJSON(bytes.NewReader(data))
}
