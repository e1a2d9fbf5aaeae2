package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-03-01"); !ok {
		t.Error("IsValidDate(2024-03-01) = false, want true")
	}
	invalid := []string{"2024-13-01", "2024-02-30", "01-03-2024", "2024/03/01", ""}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidIP(t *testing.T) {
	valid := []string{"192.168.1.201", "10.0.0.1", "::1", "fe80::1"}
	invalid := []string{"192.168.1.256", "terminal.local", "", "10.0.0"}
	for _, s := range valid {
		if !IsValidIP(s) {
			t.Errorf("IsValidIP(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidIP(s) {
			t.Errorf("IsValidIP(%q) = true, want false", s)
		}
	}
}

func TestIsValidPort(t *testing.T) {
	for _, p := range []int{1, 4370, 65535} {
		if !IsValidPort(p) {
			t.Errorf("IsValidPort(%d) = false, want true", p)
		}
	}
	for _, p := range []int{0, -1, 65536} {
		if IsValidPort(p) {
			t.Errorf("IsValidPort(%d) = true, want false", p)
		}
	}
}

func TestIsValidTimezone(t *testing.T) {
	valid := []string{"Asia/Ho_Chi_Minh", "UTC", "Europe/Berlin"}
	invalid := []string{"Not/AZone", "GMT+7:00"}
	for _, tz := range valid {
		if !IsValidTimezone(tz) {
			t.Errorf("IsValidTimezone(%q) = false, want true", tz)
		}
	}
	for _, tz := range invalid {
		if IsValidTimezone(tz) {
			t.Errorf("IsValidTimezone(%q) = true, want false", tz)
		}
	}
}
