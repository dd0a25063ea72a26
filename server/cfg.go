package server

import (
	"fmt"
	"os"

	"github.com/zucenko/roadmemo/model"
)

// LoadRoads reads a roads file, see model.ReadRoads for the format.
func LoadRoads(path string) ([]model.Road, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	roads, err := model.ReadRoads(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return roads, nil
}
