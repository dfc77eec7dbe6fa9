package metadata

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestReadEvents(t *testing.T) {
	stream := strings.Join([]string{
		": keepalive",
		"event: metadata",
		`data: {"streamTitle":"A"}`,
		"",
		"data: line one",
		"data: line two",
		"",
		"id: 7",
		"",
		`data:{"streamTitle":"B"}`,
		"",
		"",
	}, "\n")

	var got []string
	err := readEvents(strings.NewReader(stream), func(data string) {
		got = append(got, data)
	})
	if !errors.Is(err, io.EOF) {
		t.Fatalf("readEvents error = %v, want io.EOF", err)
	}

	want := []string{
		`{"streamTitle":"A"}`,
		"line one\nline two",
		`{"streamTitle":"B"}`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %q, want %q", got, want)
	}
}

func TestReadEventsIgnoresUnterminatedEvent(t *testing.T) {
	var got []string
	readEvents(strings.NewReader("data: partial"), func(data string) {
		got = append(got, data)
	})
	if len(got) != 0 {
		t.Errorf("events = %q, want none", got)
	}
}
