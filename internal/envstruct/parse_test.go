package envstruct_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tkarvinen/liftpulse/internal/envstruct"
)

type testConfig struct {
	Addr    string `env:"TEST_ADDR" envDefault:"localhost:8080"`
	DBPath  string `env:"TEST_DB_PATH"`
	Timeout int    `env:"TEST_TIMEOUT" envDefault:"5"`
	Debug   bool   `env:"TEST_DEBUG" envDefault:"false"`
	Ignored string
}

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestPopulate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    testConfig
		wantErr bool
	}{
		{
			name: "all set",
			env: map[string]string{
				"TEST_ADDR":    "localhost:9999",
				"TEST_DB_PATH": "/tmp/test.sqlite3",
				"TEST_TIMEOUT": "30",
				"TEST_DEBUG":   "true",
			},
			want: testConfig{
				Addr:    "localhost:9999",
				DBPath:  "/tmp/test.sqlite3",
				Timeout: 30,
				Debug:   true,
			},
		},
		{
			name: "defaults apply",
			env:  map[string]string{"TEST_DB_PATH": ":memory:"},
			want: testConfig{
				Addr:    "localhost:8080",
				DBPath:  ":memory:",
				Timeout: 5,
				Debug:   false,
			},
		},
		{
			name:    "missing required",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "invalid int",
			env: map[string]string{
				"TEST_DB_PATH": ":memory:",
				"TEST_TIMEOUT": "not-a-number",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg testConfig
			err := envstruct.Populate(&cfg, lookupFrom(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Populate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Errorf("Populate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPopulateRejectsNonStruct(t *testing.T) {
	var s string
	if err := envstruct.Populate(&s, lookupFrom(nil)); err == nil {
		t.Error("Populate() = nil, want error for non-struct pointer")
	}
	if err := envstruct.Populate(testConfig{}, lookupFrom(nil)); err == nil {
		t.Error("Populate() = nil, want error for non-pointer")
	}
}
