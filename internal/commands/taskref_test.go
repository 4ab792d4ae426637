package commands

import (
	"errors"
	"testing"

	"taskpop/internal/service"
)

func TestParseTaskRef_Numeric(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if ref.IDPrefix != "" {
		t.Errorf("expected no id prefix, got %q", ref.IDPrefix)
	}
}

func TestParseTaskRef_IDPrefix(t *testing.T) {
	ref, err := ParseTaskRef([]string{"3F2a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.IDPrefix != "3f2a" {
		t.Errorf("expected IDPrefix %q, got %q", "3f2a", ref.IDPrefix)
	}
}

func TestParseTaskRef_Missing(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}

	_, err = ParseTaskRef([]string{"  "})
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired for blank ref, got %v", err)
	}
}

func TestParseTaskRef_TooShortPrefix(t *testing.T) {
	_, err := ParseTaskRef([]string{"ab"})
	if err == nil {
		t.Fatal("expected error for short prefix")
	}
	expected := "invalid task reference: ab"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestParseTaskRef_TooManyArgs(t *testing.T) {
	_, err := ParseTaskRef([]string{"1", "2"})
	if err == nil {
		t.Fatal("expected error for extra args")
	}
}

func refTasks() service.TaskList {
	return service.TaskList{
		{ID: "aaaa-1111", Text: "one", Priority: "1"},
		{ID: "aaaa-2222", Text: "two", Priority: "2"},
		{ID: "bbbb-3333", Text: "three", Priority: "3"},
	}
}

func TestTaskRefResolve_ByNumber(t *testing.T) {
	got, err := TaskRef{Num: 2}.Resolve(refTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "two" {
		t.Errorf("expected task two, got %q", got.Text)
	}
}

func TestTaskRefResolve_OutOfRange(t *testing.T) {
	for _, n := range []int{0, 4} {
		_, err := TaskRef{Num: n}.Resolve(refTasks())
		if err == nil {
			t.Errorf("expected error for number %d", n)
		}
	}
}

func TestTaskRefResolve_ByPrefix(t *testing.T) {
	got, err := TaskRef{IDPrefix: "bbbb"}.Resolve(refTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "three" {
		t.Errorf("expected task three, got %q", got.Text)
	}
}

func TestTaskRefResolve_AmbiguousPrefix(t *testing.T) {
	_, err := TaskRef{IDPrefix: "aaaa"}.Resolve(refTasks())
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	expected := "ambiguous task reference: aaaa"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestTaskRefResolve_UnknownPrefix(t *testing.T) {
	_, err := TaskRef{IDPrefix: "cccc"}.Resolve(refTasks())
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
