package importer

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/claude/ironlog/internal/models"
)

// readFile returns the contents of path, gunzipping .gz files.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".gz") {
		return io.ReadAll(f)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gzip %s: %w", path, err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// ReadWorkouts parses a workout file holding either a single workout object
// or an array of them.
func ReadWorkouts(path string) ([]models.WorkoutInput, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseWorkouts(data)
}

func parseWorkouts(data []byte) ([]models.WorkoutInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var list []models.WorkoutInput
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing workout array: %w", err)
		}
		return list, nil
	}

	var one models.WorkoutInput
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("parsing workout: %w", err)
	}
	return []models.WorkoutInput{one}, nil
}
