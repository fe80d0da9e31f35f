package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUnmarshalString(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"90m"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Duration != 90*time.Minute {
		t.Fatalf("got %v, want 90m", d.Duration)
	}
}

func TestUnmarshalNanoseconds(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`1000000000`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Duration != time.Second {
		t.Fatalf("got %v, want 1s", d.Duration)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`true`), &d); err == nil {
		t.Fatal("expected error for boolean input")
	}
	if err := json.Unmarshal([]byte(`"potato"`), &d); err == nil {
		t.Fatal("expected error for unparsable string")
	}
}
