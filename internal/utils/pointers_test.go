package utils_test

import (
	"testing"

	"github.com/jrsteele09/token-relay/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, "x", utils.Value(utils.Ptr("x")))
}

func TestPtrCopies(t *testing.T) {
	v := "x"
	p := utils.Ptr(v)
	v = "y"
	require.Equal(t, "x", *p)
}
