package storage

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/breadtasks/breadtasks/types"
	"github.com/google/go-cmp/cmp"
)

func sampleTask(id int, text, category string) types.Task {
	ts := types.NewTimestamp(time.Date(2024, 1, 2, 9, 30, 0, 0, time.Local))
	return types.Task{ID: id, Text: text, Category: category, CreatedAt: ts, LastModified: ts}
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	want := &StateFile{
		Version:         types.AppVersion,
		Tasks:           []types.Task{},
		Categories:      []string{"All", "Uncategorized"},
		NextID:          1,
		CurrentCategory: "Uncategorized",
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("default state mismatch (-want +got):\n%s", diff)
	}
	if err := Validate(s); err != nil {
		t.Errorf("default state should satisfy the schema: %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := DefaultState()
	s.Tasks = append(s.Tasks, sampleTask(1, "Buy milk", "Uncategorized"))

	clone := s.Clone()
	clone.Tasks[0].Text = "changed"
	clone.Categories[1] = "changed"

	if s.Tasks[0].Text != "Buy milk" {
		t.Error("clone shares task storage with original")
	}
	if s.Categories[1] != "Uncategorized" {
		t.Error("clone shares category storage with original")
	}
}

func TestEncodeDecode(t *testing.T) {
	s := DefaultState()
	s.Tasks = append(s.Tasks, sampleTask(1, "Äpfel & <Birnen>", "Uncategorized"))
	s.NextID = 2

	savedAt := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	data, err := Encode(s, savedAt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if !strings.Contains(string(data), `"lastSaved": "2024-05-06 07:08:09"`) {
		t.Errorf("expected lastSaved with seconds, got:\n%s", data)
	}
	if !strings.Contains(string(data), "<Birnen>") {
		t.Error("expected HTML characters to be written unescaped")
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("expected trailing newline")
	}

	raw, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw.NextID == nil || *raw.NextID != 2 {
		t.Errorf("expected nextId 2, got %v", raw.NextID)
	}
	if len(raw.Tasks) != 1 {
		t.Fatalf("expected 1 raw task, got %d", len(raw.Tasks))
	}
	if id, ok := raw.Tasks[0]["id"].(json.Number); !ok || id.String() != "1" {
		t.Errorf("expected id to decode as json.Number 1, got %#v", raw.Tasks[0]["id"])
	}
}

func TestDecodeAbsentFields(t *testing.T) {
	raw, err := Decode([]byte(`{"tasks": []}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw.NextID != nil || raw.CurrentCategory != nil || raw.Categories != nil || raw.Version != nil {
		t.Errorf("expected absent fields to stay nil: %+v", raw)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	testCases := []string{
		``,
		`{"tasks": [`,
		`[1, 2, 3]`,
		`{"nextId": "three"}`,
		`{"tasks": []} {"tasks": []}`,
	}
	for _, input := range testCases {
		if _, err := Decode([]byte(input)); err == nil {
			t.Errorf("expected error decoding %q", input)
		}
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(s *StateFile)
	}{
		{name: "empty text", mutate: func(s *StateFile) { s.Tasks[0].Text = "" }},
		{name: "empty category", mutate: func(s *StateFile) { s.Tasks[0].Category = "" }},
		{name: "duplicate categories", mutate: func(s *StateFile) { s.Categories = []string{"All", "All"} }},
		{name: "too few categories", mutate: func(s *StateFile) { s.Categories = []string{"All"} }},
		{name: "zero next id", mutate: func(s *StateFile) { s.NextID = 0 }},
		{name: "missing current category", mutate: func(s *StateFile) { s.CurrentCategory = "" }},
		{name: "nil categories", mutate: func(s *StateFile) { s.Categories = nil }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultState()
			s.Tasks = append(s.Tasks, sampleTask(1, "Buy milk", "Uncategorized"))
			s.NextID = 2
			if err := Validate(s); err != nil {
				t.Fatalf("baseline should be valid: %v", err)
			}

			tc.mutate(s)
			err := Validate(s)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Errorf("expected *SchemaError, got %v", err)
			}
		})
	}
}
