package blocks_test

import (
	"context"
	"math"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

func depositState(t *testing.T, eth1Data *ethpb.Eth1Data) *state.BeaconState {
	st, err := util.NewBeaconState(func(s *ethpb.BeaconState) error {
		s.Eth1Data = eth1Data
		return nil
	})
	require.NoError(t, err)
	return st
}

func verifyingConfig(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.BeaconConfig().Copy()
	cfg.VerifyDepositProofs = true
	params.OverrideBeaconConfig(cfg)
}

func TestProcessDeposits_OrderedAndIndexAdvances(t *testing.T) {
	verifyingConfig(t)
	deposits, eth1Data, err := util.DeterministicDepositsAndEth1Data(8)
	require.NoError(t, err)
	st := depositState(t, eth1Data)

	st, err = blocks.ProcessDeposits(context.Background(), st, deposits)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), st.Eth1DepositIndex())
	require.Equal(t, 8, st.NumValidators())
	for i, d := range deposits {
		v, err := st.ValidatorAtIndex(primitives.ValidatorIndex(i))
		require.NoError(t, err)
		assert.Equal(t, d.Data.PublicKey, v.PublicKey, "validator %d registered out of order", i)
		assert.Equal(t, primitives.Gwei(params.BeaconConfig().MaxEffectiveBalance), v.EffectiveBalance)
		assert.Equal(t, params.BeaconConfig().FarFutureEpoch, v.ActivationEpoch)
	}
}

func TestProcessDeposits_BadProofRejected(t *testing.T) {
	verifyingConfig(t)
	deposits, eth1Data, err := util.DeterministicDepositsAndEth1Data(2)
	require.NoError(t, err)
	// Swapping deposits breaks the proof of each at its index.
	st := depositState(t, eth1Data)
	_, err = blocks.ProcessDeposits(context.Background(), st, []*ethpb.Deposit{deposits[1], deposits[0]})
	require.ErrorContains(t, "deposit merkle branch of deposit root did not verify", err)
}

func TestProcessDeposits_ProofsIgnoredWhenDisabled(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	deposits, eth1Data, err := util.DeterministicDepositsAndEth1Data(2)
	require.NoError(t, err)
	st := depositState(t, eth1Data)
	st, err = blocks.ProcessDeposits(context.Background(), st, []*ethpb.Deposit{deposits[1], deposits[0]})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), st.Eth1DepositIndex())
}

func TestProcessDeposits_TopUpExistingValidator(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	data := util.DeterministicDepositData(0)
	topUp := data.Copy()
	topUp.Amount = 1e9
	st := depositState(t, &ethpb.Eth1Data{})

	st, err := blocks.ProcessDeposits(context.Background(), st, []*ethpb.Deposit{{Data: data}, {Data: topUp}})
	require.NoError(t, err)
	assert.Equal(t, 1, st.NumValidators())
	assert.Equal(t, uint64(2), st.Eth1DepositIndex())
	bal, err := st.BalanceAtIndex(0)
	require.NoError(t, err)
	assert.Equal(t, primitives.Gwei(data.Amount+1e9), bal)
}

func TestProcessDeposits_IndexOverflow(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	st := depositState(t, &ethpb.Eth1Data{})
	st.SetEth1DepositIndex(math.MaxUint64 - 1)
	deposits := []*ethpb.Deposit{{Data: util.DeterministicDepositData(0)}, {Data: util.DeterministicDepositData(1)}}

	_, err := blocks.ProcessDeposits(context.Background(), st, deposits)
	require.ErrorIs(t, err, blocks.ErrDepositIndexOverflow)
	assert.Equal(t, uint64(math.MaxUint64-1), st.Eth1DepositIndex(), "state must not be touched")
}

func TestProcessDeposits_NilDeposit(t *testing.T) {
	st := depositState(t, &ethpb.Eth1Data{})
	_, err := blocks.ProcessDeposits(context.Background(), st, []*ethpb.Deposit{nil})
	require.ErrorContains(t, "got a nil deposit at index 0", err)
}

func TestGetValidatorFromDeposit_EffectiveBalance(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	tests := []struct {
		amount uint64
		want   primitives.Gwei
	}{
		{amount: 1_500_000_000, want: 1_000_000_000},
		{amount: 33_500_000_000, want: 32_000_000_000},
		{amount: 999, want: 0},
	}
	for _, tt := range tests {
		v := blocks.GetValidatorFromDeposit(&ethpb.DepositData{Amount: tt.amount})
		assert.Equal(t, tt.want, v.EffectiveBalance, "amount %d", tt.amount)
	}
}
