package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectPickArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"timepicker"},
			want: []string{"timepicker"},
		},
		{
			name: "time first token",
			in:   []string{"timepicker", "14:45"},
			want: []string{"timepicker", "pick", "--default", "14:45"},
		},
		{
			name: "time after value flag",
			in:   []string{"timepicker", "--format", "edn", "9:30"},
			want: []string{"timepicker", "--format", "edn", "pick", "--default", "9:30"},
		},
		{
			name: "time after equals flag",
			in:   []string{"timepicker", "--format=edn", "09:30"},
			want: []string{"timepicker", "--format=edn", "pick", "--default", "09:30"},
		},
		{
			name: "time after bool flag",
			in:   []string{"timepicker", "--pretty", "09:30"},
			want: []string{"timepicker", "--pretty", "pick", "--default", "09:30"},
		},
		{
			name: "time after double dash",
			in:   []string{"timepicker", "--", "09:30"},
			want: []string{"timepicker", "pick", "--default", "09:30"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"timepicker", "normalize", "7:5"},
			want: []string{"timepicker", "normalize", "7:5"},
		},
		{
			name: "not a time",
			in:   []string{"timepicker", "12:345"},
			want: []string{"timepicker", "12:345"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectPickArgs(append([]string(nil), tt.in...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}
