package messages

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tessro/onair/internal/core"
	onairerrors "github.com/tessro/onair/internal/errors"
)

type storeFactory struct {
	name string
	open func(t *testing.T, opts Options) Store
}

func factories() []storeFactory {
	return []storeFactory{
		{"memory", func(t *testing.T, opts Options) Store {
			return NewMemoryStore(opts)
		}},
		{"file", func(t *testing.T, opts Options) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), DefaultFileName), opts)
			if err != nil {
				t.Fatalf("NewFileStore() error = %v", err)
			}
			return s
		}},
		{"sqlite", func(t *testing.T, opts Options) Store {
			s, err := NewSQLStore(filepath.Join(t.TempDir(), DefaultDBName), opts)
			if err != nil {
				t.Fatalf("NewSQLStore() error = %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		}},
	}
}

func TestStoreAddUsesPlaceholderPhoto(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			mock := clock.NewMock()
			mock.Set(time.UnixMilli(1700000000000))
			s := f.open(t, Options{Clock: mock})

			added, err := s.Add(Input{Name: "Ana", City: "Recife", Text: "Olá!"})
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if added.ID == "" {
				t.Error("Add() returned empty ID")
			}

			list, err := s.List()
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(list) != 1 {
				t.Fatalf("List() len = %d, want 1", len(list))
			}

			m := list[0]
			if m.SenderName != "Ana" || m.City != "Recife" || m.Text != "Olá!" {
				t.Errorf("message = %+v", m)
			}
			if m.Photo != DefaultPlaceholder {
				t.Errorf("Photo = %q, want placeholder", m.Photo)
			}
			if m.CreatedAt != 1700000000000 {
				t.Errorf("CreatedAt = %d, want 1700000000000", m.CreatedAt)
			}
			if m.ID != added.ID {
				t.Errorf("ID = %q, want %q", m.ID, added.ID)
			}
		})
	}
}

func TestStoreKeepsNewestFifty(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			mock := clock.NewMock()
			s := f.open(t, Options{Clock: mock})

			for i := 0; i < 60; i++ {
				mock.Add(time.Millisecond)
				if _, err := s.Add(Input{Name: "N", City: "C", Text: fmt.Sprintf("msg %d", i)}); err != nil {
					t.Fatalf("Add(%d) error = %v", i, err)
				}
			}

			list, _ := s.List()
			if len(list) != DefaultLimit {
				t.Fatalf("List() len = %d, want %d", len(list), DefaultLimit)
			}
			if list[0].Text != "msg 59" {
				t.Errorf("first = %q, want msg 59", list[0].Text)
			}
			if list[len(list)-1].Text != "msg 10" {
				t.Errorf("last = %q, want msg 10", list[len(list)-1].Text)
			}
		})
	}
}

func TestStoreOrderWithinSameMillisecond(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.open(t, Options{Clock: clock.NewMock()})
			for _, text := range []string{"first", "second", "third"} {
				if _, err := s.Add(Input{Name: "N", City: "C", Text: text}); err != nil {
					t.Fatalf("Add() error = %v", err)
				}
			}
			list, _ := s.List()
			if len(list) != 3 || list[0].Text != "third" || list[2].Text != "first" {
				t.Errorf("order = %v", texts(list))
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			mock := clock.NewMock()
			s := f.open(t, Options{Clock: mock})

			a, _ := s.Add(Input{Name: "A", City: "C", Text: "a"})
			mock.Add(time.Millisecond)
			b, _ := s.Add(Input{Name: "B", City: "C", Text: "b"})

			if err := s.Delete(a.ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if err := s.Delete(a.ID); err != nil {
				t.Fatalf("second Delete() error = %v", err)
			}
			if err := s.Delete("no-such-id"); err != nil {
				t.Fatalf("Delete(unknown) error = %v", err)
			}

			list, _ := s.List()
			if len(list) != 1 || list[0].ID != b.ID {
				t.Errorf("List() after delete = %v", texts(list))
			}
		})
	}
}

func TestStoreRejectsInvalidInput(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.open(t, Options{})

			_, err := s.Add(Input{Name: "  ", City: "Recife", Text: "hi"})
			if !errors.Is(err, onairerrors.ErrInvalidMessage) {
				t.Fatalf("Add() error = %v, want ErrInvalidMessage", err)
			}

			list, _ := s.List()
			if len(list) != 0 {
				t.Errorf("List() len = %d, want 0", len(list))
			}
		})
	}
}

func TestStoreKeepsCustomPhoto(t *testing.T) {
	s := NewMemoryStore(Options{})
	photo := "data:image/png;base64,AAAA"

	m, err := s.Add(Input{Name: "Ana", City: "Recife", Text: "hi", Photo: photo})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if m.Photo != photo {
		t.Errorf("Photo = %q, want %q", m.Photo, photo)
	}
	if !m.HasCustomPhoto(DefaultPlaceholder) {
		t.Error("HasCustomPhoto() = false")
	}
}

func TestStoreCustomLimit(t *testing.T) {
	s := NewMemoryStore(Options{Limit: 2})
	for i := 0; i < 5; i++ {
		s.Add(Input{Name: "N", City: "C", Text: fmt.Sprintf("%d", i)})
	}
	list, _ := s.List()
	if len(list) != 2 || list[0].Text != "4" {
		t.Errorf("List() = %v, want [4 3]", texts(list))
	}
}

func texts(list []core.Message) []string {
	out := make([]string, len(list))
	for i, m := range list {
		out[i] = m.Text
	}
	return out
}
