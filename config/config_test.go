package config

import "testing"

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":    "9090",
		"APP_ENV": "production",
		"BROKEN":  "not-a-number",
	}

	if got := GetString(cfg, "APP_ENV", "development"); got != "production" {
		t.Errorf("GetString = %q", got)
	}
	if got := GetString(cfg, "MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetString missing key = %q", got)
	}
	if got := GetInt(cfg, "PORT", 8080); got != 9090 {
		t.Errorf("GetInt = %d", got)
	}
	if got := GetInt(cfg, "BROKEN", 8080); got != 8080 {
		t.Errorf("GetInt unparsable = %d", got)
	}
	if !IsProduction(cfg) {
		t.Error("IsProduction = false")
	}
	if IsProduction(nil) {
		t.Error("IsProduction(nil) = true")
	}
}
