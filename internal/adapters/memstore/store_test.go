package memstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	s := New()

	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("k", []byte("abc")))
	v, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}

func TestCopiesOnBothSides(t *testing.T) {
	s := New()
	in := []byte("abc")
	require.NoError(t, s.Set("k", in))
	in[0] = 'z'

	out, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[1] = 'z'
	again, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestInjectedFailures(t *testing.T) {
	s := New()
	s.FailGet = errors.New("read broken")
	s.FailSet = errors.New("write broken")

	_, err := s.Get("k")
	assert.EqualError(t, err, "read broken")
	assert.EqualError(t, s.Set("k", nil), "write broken")
}
