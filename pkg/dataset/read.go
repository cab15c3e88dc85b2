package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Read parses whitespace-separated WIDTHxHEIGHT items, the format the
// renderer accepts.
func Read(r io.Reader) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		item, err := ParseItem(sc.Text())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataset: read: %w", err)
	}
	return items, nil
}

// ParseItem parses a single WIDTHxHEIGHT token.
func ParseItem(token string) (Item, error) {
	ws, hs, ok := strings.Cut(token, "x")
	if !ok {
		return Item{}, fmt.Errorf("dataset: invalid item %q: want WIDTHxHEIGHT", token)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return Item{}, fmt.Errorf("dataset: invalid width in %q", token)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return Item{}, fmt.Errorf("dataset: invalid height in %q", token)
	}
	return Item{Width: w, Height: h}, nil
}
