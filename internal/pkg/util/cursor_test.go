package util

import "testing"

func TestCursorRoundTrip(t *testing.T) {
	values := []interface{}{"2024-06-01T10:00:00Z", "hello-world"}

	encoded := EncodeCursor(values)
	if encoded == "" {
		t.Fatal("EncodeCursor returned empty string")
	}

	decoded, err := DecodeCursor(encoded)
	if err != nil {
		t.Fatalf("DecodeCursor: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded length = %d, want 2", len(decoded))
	}
	if decoded[0] != "2024-06-01T10:00:00Z" || decoded[1] != "hello-world" {
		t.Errorf("decoded = %v, want original values", decoded)
	}
}

func TestDecodeCursorEmpty(t *testing.T) {
	decoded, err := DecodeCursor("")
	if err != nil || decoded != nil {
		t.Errorf("DecodeCursor(\"\") = %v, %v, want nil, nil", decoded, err)
	}
}

func TestDecodeCursorGarbage(t *testing.T) {
	if _, err := DecodeCursor("not@base64!"); err == nil {
		t.Error("expected error for invalid base64")
	}
	// 合法 base64 但不是 JSON 数组
	if _, err := DecodeCursor("aGVsbG8="); err == nil {
		t.Error("expected error for non-JSON payload")
	}
}
