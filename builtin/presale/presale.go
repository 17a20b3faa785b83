// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package presale

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/params"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/reverts"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/solidity"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/token"
	"github.com/Prakrit-Jain/Blockchain-Projects/log"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

var logger = log.WithContext("pkg", "presale")

var (
	slotReferrers   = bcp.BytesToBytes32([]byte("referrers"))
	slotTotalSold   = bcp.BytesToBytes32([]byte("total-sold"))
	slotTotalRaised = bcp.BytesToBytes32([]byte("total-raised"))

	ErrInvalidAmount   = reverts.New("invalid amount")
	ErrSelfReferral    = reverts.New("self referral")
	ErrAlreadyReferred = reverts.New("referrer already set")
	ErrTransferFailed  = reverts.New("transfer failed")
)

// Presale implements the fixed-rate token sale with referral payouts.
//
// A purchase pulls payment from the buyer to the beneficiary, mints tokens
// to the buyer at the configured rate, then walks the buyer's referrer
// chain and mints each level its configured percentage of the purchase.
type Presale struct {
	context     *solidity.Context
	params      *params.Params
	token       *token.Token
	referrers   *solidity.Mapping[bcp.Address, bcp.Address]
	totalSold   *solidity.Uint256
	totalRaised *solidity.Uint256
	sink        events.Sink
}

// New create a new instance.
func New(addr bcp.Address, st *state.State, params *params.Params, token *token.Token, sink events.Sink) *Presale {
	context := solidity.NewContext(addr, st)
	return &Presale{
		context:     context,
		params:      params,
		token:       token,
		referrers:   solidity.NewMapping[bcp.Address, bcp.Address](context, slotReferrers),
		totalSold:   solidity.NewUint256(context, slotTotalSold),
		totalRaised: solidity.NewUint256(context, slotTotalRaised),
		sink:        sink,
	}
}

// ReferrerOf returns the registered referrer of an account, if any.
func (p *Presale) ReferrerOf(account bcp.Address) (bcp.Address, bool, error) {
	found, err := p.referrers.Has(account)
	if err != nil {
		return bcp.Address{}, false, errors.Wrap(err, "failed to probe referrer")
	}
	if !found {
		return bcp.Address{}, false, nil
	}
	ref, err := p.referrers.Get(account)
	if err != nil {
		return bcp.Address{}, false, errors.Wrap(err, "failed to get referrer")
	}
	return ref, true, nil
}

// Register binds a referrer to the buyer. The binding is permanent.
func (p *Presale) Register(buyer, referrer bcp.Address) error {
	if buyer == referrer {
		return ErrSelfReferral
	}
	found, err := p.referrers.Has(buyer)
	if err != nil {
		return errors.Wrap(err, "failed to probe referrer")
	}
	if found {
		return ErrAlreadyReferred
	}
	if err := p.referrers.Set(buyer, referrer); err != nil {
		return errors.Wrap(err, "failed to set referrer")
	}
	return nil
}

// Buy exchanges payment for tokens at the configured rate and pays the
// referral chain. All effects apply or none do.
func (p *Presale) Buy(buyer bcp.Address, payment *big.Int, tick uint64) (*big.Int, error) {
	if payment == nil || payment.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	st := p.context.State()
	checkpoint := st.NewCheckpoint()

	beneficiary, err := p.beneficiary()
	if err != nil {
		return nil, err
	}
	if err := p.token.Transfer(buyer, beneficiary, payment); err != nil {
		st.RevertTo(checkpoint)
		return nil, errors.WithMessage(ErrTransferFailed, err.Error())
	}

	rate, err := p.params.Get(bcp.KeyPresaleRate)
	if err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}
	bought := new(big.Int).Mul(payment, rate)

	if err := p.token.Mint(buyer, bought); err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}
	if err := p.totalSold.Add(bought); err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}
	if err := p.totalRaised.Add(payment); err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}

	if err := p.payReferrers(buyer, bought, tick); err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}

	logger.Debug("purchase", "buyer", buyer, "payment", payment, "bought", bought, "tick", tick)

	if err := p.sink.Emit(&events.Event{
		Contract: p.context.Address(),
		Name:     events.NameTokensPurchased,
		Account:  buyer,
		Amount:   new(big.Int).Set(bought),
		Tick:     tick,
	}); err != nil {
		logger.Warn("failed to emit event", "name", events.NameTokensPurchased, "err", err)
	}
	return bought, nil
}

// TotalSold returns the amount of tokens ever sold, referral rewards excluded.
func (p *Presale) TotalSold() (*big.Int, error) {
	return p.totalSold.Get()
}

// TotalRaised returns the amount of payment ever collected.
func (p *Presale) TotalRaised() (*big.Int, error) {
	return p.totalRaised.Get()
}

// payReferrers walks the buyer's referral chain and mints each level its
// percentage of the purchase. The walk stops at the first unregistered
// account or after the maximum depth.
func (p *Presale) payReferrers(buyer bcp.Address, bought *big.Int, tick uint64) error {
	levelKeys := [bcp.MaxReferralLevels]bcp.Bytes32{
		bcp.KeyReferralLevel1,
		bcp.KeyReferralLevel2,
		bcp.KeyReferralLevel3,
	}

	current := buyer
	for _, key := range levelKeys {
		referrer, found, err := p.ReferrerOf(current)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}

		percent, err := p.params.Get(key)
		if err != nil {
			return err
		}
		reward := new(big.Int).Mul(bought, percent)
		reward.Div(reward, big.NewInt(100))

		if reward.Sign() > 0 {
			if err := p.token.Mint(referrer, reward); err != nil {
				return err
			}
			if err := p.sink.Emit(&events.Event{
				Contract: p.context.Address(),
				Name:     events.NameReferralReward,
				Account:  referrer,
				Amount:   reward,
				Tick:     tick,
			}); err != nil {
				logger.Warn("failed to emit event", "name", events.NameReferralReward, "err", err)
			}
		}
		current = referrer
	}
	return nil
}

// beneficiary reads the payment collector address from params.
func (p *Presale) beneficiary() (bcp.Address, error) {
	v, err := p.params.Get(bcp.KeyPresaleBeneficiary)
	if err != nil {
		return bcp.Address{}, err
	}
	return bcp.BytesToAddress(v.Bytes()), nil
}
