package svmreg

import (
	"encoding/binary"

	"github.com/ModChain/visualsign/chain"
	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/svm"
	"github.com/ModChain/visualsign/visignerr"
)

var stakePoolProgram = mustKey("SPoo1Ku8WFXoNDMHPsrGSTSG1Y47rzgn41SLUNakuHy")

// SPL stake pool instruction tags (single byte).
const (
	stakePoolDepositStake  = 9
	stakePoolWithdrawStake = 10
	stakePoolDepositSol    = 14
	stakePoolWithdrawSol   = 16
)

func registerStakePool(r *Registry) {
	r.Register(stakePoolProgram, []byte{stakePoolDepositStake}, visualizeStakePoolDepositStake)
	r.Register(stakePoolProgram, []byte{stakePoolWithdrawStake}, visualizeStakePoolWithdrawStake)
	r.Register(stakePoolProgram, []byte{stakePoolDepositSol}, visualizeStakePoolDepositSol)
	r.Register(stakePoolProgram, []byte{stakePoolWithdrawSol}, visualizeStakePoolWithdrawSol)
}

// visualizeStakePoolDepositStake handles DepositStake, which carries no
// arguments: the deposited stake account's full delegation moves into the
// pool, so only the accounts are rendered.
func visualizeStakePoolDepositStake(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) < 5 {
		return nil, visignerr.Calldata("BadStakePoolInstruction", -1, nil)
	}
	return &InstructionView{
		Title:     "Stake Pool Deposit",
		Condensed: summaryField("Deposit stake account " + shortKey(accounts[4]) + " into pool " + shortKey(accounts[0])),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Stake pool", accounts[0].String(), "", "")),
			fields.Annotate(fields.Address("Deposited stake account", accounts[4].String(), "", "")),
			fields.Annotate(fields.Text("Action", "Deposit an entire stake account's delegation into the pool")),
		},
	}, nil
}

func visualizeStakePoolWithdrawStake(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) < 1 || len(data) < 9 {
		return nil, visignerr.Calldata("BadStakePoolInstruction", -1, nil)
	}
	poolTokens := formatUint64(binary.LittleEndian.Uint64(data[1:9]))
	return &InstructionView{
		Title:     "Stake Pool Withdraw",
		Condensed: summaryField("Burn " + poolTokens + " pool tokens for an active stake account"),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Stake pool", accounts[0].String(), "", "")),
			fields.Annotate(fields.Amount("Pool tokens", poolTokens, "", poolTokens+" raw units")),
			fields.Annotate(fields.Text("Action", "Withdraw an active stake account in exchange for pool tokens")),
		},
	}, nil
}

func visualizeStakePoolDepositSol(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) < 1 || len(data) < 9 {
		return nil, visignerr.Calldata("BadStakePoolInstruction", -1, nil)
	}
	amount := solAmount(binary.LittleEndian.Uint64(data[1:9]))
	return &InstructionView{
		Title:     "Stake Pool Deposit",
		Condensed: summaryField("Deposit " + amount + " SOL into pool " + shortKey(accounts[0])),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Stake pool", accounts[0].String(), "", "")),
			fields.Annotate(fields.Amount("Amount", amount, "SOL", amount+" SOL")),
		},
	}, nil
}

func visualizeStakePoolWithdrawSol(ctx *chain.Context, programID svm.Key, accounts []svm.Key, data []byte) (*InstructionView, error) {
	if len(accounts) < 1 || len(data) < 9 {
		return nil, visignerr.Calldata("BadStakePoolInstruction", -1, nil)
	}
	poolTokens := formatUint64(binary.LittleEndian.Uint64(data[1:9]))
	return &InstructionView{
		Title:     "Stake Pool Withdraw",
		Condensed: summaryField("Burn " + poolTokens + " pool tokens for SOL"),
		Expanded: []*fields.AnnotatedField{
			fields.Annotate(fields.Address("Stake pool", accounts[0].String(), "", "")),
			fields.Annotate(fields.Amount("Pool tokens", poolTokens, "", poolTokens+" raw units")),
		},
	}, nil
}
