package netutil

import "testing"

func TestNewScopeRejectsEmpty(t *testing.T) {
	t.Parallel()

	for _, domains := range [][]string{
		nil,
		{},
		{""},
		{"*.example.com", "# comment", "   "},
	} {
		if _, err := NewScope(domains); err == nil {
			t.Errorf("NewScope(%q) should fail when no entry survives", domains)
		}
	}
}

func TestScopeAllowsDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		domains []string
		allowed []string
		denied  []string
	}{
		{
			name:    "registrable domain",
			domains: []string{"example.com"},
			allowed: []string{"example.com", "www.example.com", "deep.api.example.com", "EXAMPLE.COM"},
			denied:  []string{"example.org", "notexample.com", "example.com.evil.net", "10.0.0.1"},
		},
		{
			name:    "subdomain entry widens to siblings",
			domains: []string{"app.example.com"},
			allowed: []string{"app.example.com", "other.example.com", "example.com"},
			denied:  []string{"example.net"},
		},
		{
			name:    "public suffix boundary",
			domains: []string{"example.co.uk"},
			allowed: []string{"example.co.uk", "www.example.co.uk"},
			denied:  []string{"other.co.uk", "co.uk"},
		},
		{
			name:    "ip entry is exact",
			domains: []string{"10.0.0.1"},
			allowed: []string{"10.0.0.1"},
			denied:  []string{"10.0.0.2", "example.com"},
		},
		{
			name:    "mixed entries",
			domains: []string{"example.com", "10.0.0.1"},
			allowed: []string{"api.example.com", "10.0.0.1"},
			denied:  []string{"10.0.0.2", "example.net"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			scope, err := NewScope(tt.domains)
			if err != nil {
				t.Fatalf("NewScope(%q) failed: %v", tt.domains, err)
			}

			for _, host := range tt.allowed {
				if !scope.AllowsDomain(host) {
					t.Errorf("AllowsDomain(%q) = false, want true", host)
				}
			}
			for _, host := range tt.denied {
				if scope.AllowsDomain(host) {
					t.Errorf("AllowsDomain(%q) = true, want false", host)
				}
			}
		})
	}
}

func TestNilScopeAllowsEverything(t *testing.T) {
	t.Parallel()

	var scope *Scope
	for _, host := range []string{"example.com", "anything.at.all", ""} {
		if !scope.AllowsDomain(host) {
			t.Errorf("nil scope should allow %q", host)
		}
	}
}
