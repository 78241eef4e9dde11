package domain

import "testing"

func TestNextCheckpoint(t *testing.T) {
	seq := []ShipmentCheckpointSequence{
		{CheckpointID: "cp-1", SequenceOrder: 1},
		{CheckpointID: "cp-2", SequenceOrder: 2},
		{CheckpointID: "cp-3", SequenceOrder: 3},
	}

	tests := []struct {
		name   string
		after  string
		want   string
		wantOK bool
	}{
		{name: "first", after: "", want: "cp-1", wantOK: true},
		{name: "middle", after: "cp-1", want: "cp-2", wantOK: true},
		{name: "last", after: "cp-2", want: "cp-3", wantOK: true},
		{name: "exhausted", after: "cp-3", want: "", wantOK: false},
		{name: "unknown", after: "cp-9", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextCheckpoint(seq, tt.after)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("NextCheckpoint(%q) = (%q, %v), want (%q, %v)", tt.after, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if _, ok := NextCheckpoint(nil, ""); ok {
		t.Fatalf("empty sequence should have no next checkpoint")
	}
}
