package toolchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in      string
		want    Family
		wantErr bool
	}{
		{"gcc", GCC, false},
		{"g++", GCC, false},
		{"gcc-family", GCC, false},
		{"clang", Clang, false},
		{"clang++", Clang, false},
		{"CLANG", Clang, false},
		{"", 0, true},
		{"msvc", 0, true},
		{"icc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFamily(tt.in)
		if tt.wantErr {
			require.Error(t, err, "ParseFamily(%q)", tt.in)
			var familyErr *UnknownFamilyError
			require.ErrorAs(t, err, &familyErr)
			assert.Equal(t, []string{"gcc", "clang"}, familyErr.Available)
			continue
		}
		require.NoError(t, err, "ParseFamily(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestBackendFor(t *testing.T) {
	gcc := BackendFor(GCC)
	assert.Equal(t, "gcc", gcc.CC)
	assert.Equal(t, "g++", gcc.CXX)
	assert.Equal(t, "cpp", gcc.CPP)
	assert.Equal(t, []string{"cpp", "-MM"}, gcc.DepScan)

	clang := BackendFor(Clang)
	assert.Equal(t, "clang", clang.CC)
	assert.Equal(t, "clang++", clang.CXX)
	assert.Contains(t, clang.Flags, "-Qunused-arguments")
}
