package i18n

import "testing"

func TestTFallsBackToRussian(t *testing.T) {
	// admin strings exist only in the Russian table
	if got := T(EN, "admin_menu"); got != "Меню администратора:" {
		t.Errorf("T(EN, admin_menu) = %q", got)
	}
	if got := T("de", "main_menu"); got != "Главное меню:" {
		t.Errorf("T(unknown lang) = %q", got)
	}
	if got := T(RU, "no_such_key"); got != "no_such_key" {
		t.Errorf("T(missing key) = %q", got)
	}
}

func TestTf(t *testing.T) {
	got := Tf(EN, "confirm_reg", "John Doe", "+998901234567")
	want := "Confirm your registration:\n\nName: John Doe\nPhone: +998901234567"
	if got != want {
		t.Errorf("Tf = %q, want %q", got, want)
	}
}

func TestFromButton(t *testing.T) {
	cases := map[string]Lang{"RU": RU, "UZ": UZ, "EN": EN}
	for btn, want := range cases {
		got, ok := FromButton(btn)
		if !ok || got != want {
			t.Errorf("FromButton(%q) = %v, %v", btn, got, ok)
		}
	}
	if _, ok := FromButton("FR"); ok {
		t.Error("FromButton(FR) should not match")
	}
}

func TestMatchCaption(t *testing.T) {
	if !MatchCaption("Online Events", "online_events") {
		t.Error("English caption should match")
	}
	if !MatchCaption("Onlayn tadbirlar", "online_events") {
		t.Error("Uzbek caption should match")
	}
	if MatchCaption("Online Events", "offline_events") {
		t.Error("caption must not match a different key")
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("uz") != UZ {
		t.Error("uz should normalize to UZ")
	}
	if Normalize("xx") != RU {
		t.Error("unknown codes should normalize to RU")
	}
}
