package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name        string
		cb          *tele.Callback
		wantKey     string
		wantPayload string
	}{
		{"nil", nil, "", ""},
		{"encoded", &tele.Callback{Data: "\fevreg|15"}, "evreg", "15"},
		{"no payload", &tele.Callback{Data: "\fexit"}, "exit", ""},
		{"unique set", &tele.Callback{Unique: "evreg", Data: "15"}, "evreg", "15"},
		{"plain", &tele.Callback{Data: "evreg|15"}, "evreg", "15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, payload := Parse(tc.cb)
			if key != tc.wantKey || payload != tc.wantPayload {
				t.Errorf("Parse = (%q, %q), want (%q, %q)", key, payload, tc.wantKey, tc.wantPayload)
			}
		})
	}
}
