package kv

import (
	"testing"

	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func Test_encode_handlesNilFromFunction(t *testing.T) {
	foo := func() *ethpb.BeaconBlock {
		return nil
	}
	_, err := encode(foo())
	assert.ErrorContains(t, "cannot encode nil message", err)
}

func Test_decode_RejectsCorruptData(t *testing.T) {
	enc, err := encode(testBlock(1))
	require.NoError(t, err)
	dst := &ethpb.BeaconBlock{}
	require.NoError(t, decode(enc, dst))
	assert.NotNil(t, decode(enc[:len(enc)/2], &ethpb.BeaconBlock{}))
}
