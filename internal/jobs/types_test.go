package jobs

import (
	"testing"
	"time"
)

func TestYears(t *testing.T) {
	got := Years(1999, 2002)
	want := []int{2002, 2001, 2000, 1999}
	if len(got) != len(want) {
		t.Fatalf("Years() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Years() = %v, want %v", got, want)
		}
	}

	if Years(2024, 2020) != nil {
		t.Error("expected nil for inverted range")
	}
}

func TestDescriptor_Pending(t *testing.T) {
	d := Descriptor{Name: "filings", Partitions: []int{2024, 2023, 2022, 2021}}
	state := State{CompletedYears: []int{2023, 2021}}

	got := d.Pending(state)
	if len(got) != 2 || got[0] != 2024 || got[1] != 2022 {
		t.Errorf("Pending() = %v, want [2024 2022]", got)
	}
}

func TestState_With(t *testing.T) {
	s := State{CompletedYears: []int{2020}}
	s2 := s.With(2024).With(2020).With(2022)

	want := []int{2024, 2022, 2020}
	if len(s2.CompletedYears) != len(want) {
		t.Fatalf("With() = %v, want %v", s2.CompletedYears, want)
	}
	for i := range want {
		if s2.CompletedYears[i] != want[i] {
			t.Fatalf("With() = %v, want %v", s2.CompletedYears, want)
		}
	}
	if len(s.CompletedYears) != 1 {
		t.Error("With() must not modify the receiver")
	}
}

func TestDescriptor_Validate(t *testing.T) {
	valid := Descriptor{Name: "filings", Endpoint: "filings", Partitions: []int{2024}, RateLimitDelay: 4500 * time.Millisecond}

	tests := []struct {
		name    string
		mutate  func(d *Descriptor)
		wantErr bool
	}{
		{"valid", func(d *Descriptor) {}, false},
		{"no name", func(d *Descriptor) { d.Name = "" }, true},
		{"no endpoint", func(d *Descriptor) { d.Endpoint = "" }, true},
		{"no partitions", func(d *Descriptor) { d.Partitions = nil }, true},
		{"negative delay", func(d *Descriptor) { d.RateLimitDelay = -time.Second }, true},
		{"negative pages", func(d *Descriptor) { d.MaxPages = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
