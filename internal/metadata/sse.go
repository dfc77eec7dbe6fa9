package metadata

import (
	"bufio"
	"io"
	"strings"
)

const maxEventSize = 1 << 20

// readEvents parses a text/event-stream body and calls onData with the data
// of each dispatched event. It returns the scanner error, or io.EOF when the
// server closed the stream.
func readEvents(r io.Reader, onData func(data string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxEventSize)

	var data []string
	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if len(data) > 0 {
				onData(strings.Join(data, "\n"))
				data = data[:0]
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		if field == "data" {
			data = append(data, value)
		}
		// event, id and retry carry nothing we use.
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}
