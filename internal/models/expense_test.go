package models

import "testing"

func TestShareMethod_Valid(t *testing.T) {
	tests := []struct {
		method ShareMethod
		want   bool
	}{
		{ShareMethodEqual, true},
		{ShareMethodShares, true},
		{ShareMethodPercentage, true},
		{ShareMethodExactAmounts, true},
		{"exact", false},
		{"EQUAL", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.method.Valid(); got != tt.want {
			t.Errorf("ShareMethod(%q).Valid() = %v, want %v", tt.method, got, tt.want)
		}
	}
}
