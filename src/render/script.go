package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// event is one scripted command applied at a sample offset.
type event struct {
	offset  int
	command []string
}

// parseScript reads lines of the form "<offset> <command> [args...]".
// Blank lines and lines starting with '#' are skipped. Events are returned
// in offset order; events at the same offset keep their file order.
func parseScript(r io.Reader) ([]event, error) {
	var events []event
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected <offset> <command>", lineNum)
		}
		offset, err := strconv.Atoi(fields[0])
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("line %d: invalid offset %q", lineNum, fields[0])
		}
		events = append(events, event{offset: offset, command: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].offset < events[j].offset
	})
	return events, nil
}
