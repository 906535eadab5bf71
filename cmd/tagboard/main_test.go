package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectActionArgs(t *testing.T) {
	t.Parallel()

	action := `{"type":"NewCard"}`
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"tagboard"},
			want: []string{"tagboard"},
		},
		{
			name: "action first token",
			in:   []string{"tagboard", action},
			want: []string{"tagboard", "do", action},
		},
		{
			name: "action after value flag",
			in:   []string{"tagboard", "--board", "./b.json", action},
			want: []string{"tagboard", "--board", "./b.json", "do", action},
		},
		{
			name: "action after equals flag",
			in:   []string{"tagboard", "--board=./b.json", action},
			want: []string{"tagboard", "--board=./b.json", "do", action},
		},
		{
			name: "action after bool flag",
			in:   []string{"tagboard", "--pretty", action},
			want: []string{"tagboard", "--pretty", "do", action},
		},
		{
			name: "action after double dash",
			in:   []string{"tagboard", "--", action},
			want: []string{"tagboard", "--", "do", action},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"tagboard", "do", action},
			want: []string{"tagboard", "do", action},
		},
		{
			name: "flag value that looks like json is skipped",
			in:   []string{"tagboard", "--format", "json", "state"},
			want: []string{"tagboard", "--format", "json", "state"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectActionArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v want %#v", got, tt.want)
			}
		})
	}
}
