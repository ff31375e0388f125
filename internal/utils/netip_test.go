package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", want: "192.0.2.1"},
		{name: "headers ignored without trust", headers: map[string]string{"X-Real-IP": "10.0.0.1"}, want: "192.0.2.1"},
		{name: "cloudflare first", headers: map[string]string{"CF-Connecting-IP": "10.0.0.9", "X-Real-IP": "10.0.0.1"}, trustProxy: true, want: "10.0.0.9"},
		{name: "left-most forwarded", headers: map[string]string{"X-Forwarded-For": " 10.0.0.2 , 172.16.0.1"}, trustProxy: true, want: "10.0.0.2"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.3"}, trustProxy: true, want: "10.0.0.3"},
		{name: "trusted but empty", trustProxy: true, want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.20 ", "bogus", "fd00::/8"})
	if m.IsEmpty() {
		t.Fatal("matcher is empty")
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.200.1.1", true},
		{"192.168.1.20", true},
		{"192.168.1.21", false},
		{"::ffff:10.1.1.1", true},
		{"fd12::1", true},
		{"2001:db8::1", false},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("nil list should give an empty matcher")
	}
}
