package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/odvcencio/domreplay/pkg/transition"
)

// WriteJSONL writes the log as one structured transition record per
// line.
func WriteJSONL(w io.Writer, log *Log) error {
	for i, tr := range log.Transitions() {
		data, err := json.Marshal(tr)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// ReadJSONL reads a log written by WriteJSONL. Blank lines are
// skipped; records without an elapsed value never completed and are
// rejected.
func ReadJSONL(r io.Reader) (*Log, error) {
	log := NewLog()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		tr := transition.New()
		if err := json.Unmarshal([]byte(text), tr); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !tr.Completed() {
			return nil, fmt.Errorf("line %d: transition never completed", line)
		}
		log.Append(tr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return log, nil
}
