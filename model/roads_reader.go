package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrBrokenRoad = errors.New("road is not connected")

// ReadRoads parses one road per line, each a list of "row,col" pairs
// separated by blanks. Empty lines and lines starting with '#' are skipped.
func ReadRoads(reader io.Reader) ([]Road, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	roads := make([]Road, 0)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		road := make(Road, 0)
		for _, field := range strings.Fields(s) {
			p, err := parsePos(field)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			road = append(road, p)
		}
		if err := road.Validate(MaxRows, MaxCols); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !road.Connected() {
			return nil, fmt.Errorf("line %d: %w", line, ErrBrokenRoad)
		}
		roads = append(roads, road)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(roads) == 0 {
		return nil, ErrNoRoads
	}
	return roads, nil
}

func parsePos(field string) (Pos, error) {
	parts := strings.Split(field, ",")
	if len(parts) != 2 {
		return Pos{}, fmt.Errorf("bad position %q", field)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return Pos{}, fmt.Errorf("bad row in %q: %w", field, err)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return Pos{}, fmt.Errorf("bad column in %q: %w", field, err)
	}
	return Pos{Row: row, Col: col}, nil
}
