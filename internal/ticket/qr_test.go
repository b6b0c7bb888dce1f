package ticket

import "testing"

func TestEncodeDecode(t *testing.T) {
	p := Payload{RegistrationID: 7, EventID: 3, UserID: 123456789}
	got, err := Decode(p.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != p {
		t.Errorf("roundtrip = %+v, want %+v", got, p)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "evt:1", "foo:1:reg:2:user:3", "evt:x:reg:2:user:3"} {
		if _, err := Decode(s); err == nil {
			t.Errorf("Decode(%q) expected error", s)
		}
	}
}

func TestPNG(t *testing.T) {
	img, err := PNG(Payload{RegistrationID: 1, EventID: 2, UserID: 3})
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if len(img) == 0 {
		t.Error("empty image")
	}
}
