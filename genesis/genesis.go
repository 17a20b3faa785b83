// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

// NewCustomNet returns a builder seeding the state described by the given
// custom genesis: funded accounts, the admin set and governance params.
func NewCustomNet(gen *CustomGenesis) *Builder {
	return new(Builder).
		State(func(st *state.State) error {
			tok := builtin.Token.WithState(st, events.Nop())
			for _, account := range gen.Accounts {
				if account.Balance == nil {
					continue
				}
				balance := (*big.Int)(account.Balance)
				if balance.Sign() < 0 {
					return errors.New("balance must be a non-negative integer")
				}
				if err := tok.Mint(account.Address, balance); err != nil {
					return err
				}
			}
			return nil
		}).
		State(func(st *state.State) error {
			access := builtin.Access.WithState(st)
			for _, admin := range gen.Admins {
				if _, err := access.Grant(admin.Address); err != nil {
					return err
				}
			}
			return nil
		}).
		State(func(st *state.State) error {
			par := builtin.Params.WithState(st)

			rate := bcp.InitialPresaleRate
			if gen.Params.PresaleRate != nil {
				rate = (*big.Int)(gen.Params.PresaleRate)
			}
			if err := par.Set(bcp.KeyPresaleRate, rate); err != nil {
				return err
			}

			levelKeys := [bcp.MaxReferralLevels]bcp.Bytes32{
				bcp.KeyReferralLevel1,
				bcp.KeyReferralLevel2,
				bcp.KeyReferralLevel3,
			}
			if len(gen.Params.ReferralLevels) > bcp.MaxReferralLevels {
				return errors.Errorf("at most %d referral levels supported", bcp.MaxReferralLevels)
			}
			for i, key := range levelKeys {
				level := bcp.InitialReferralLevels[i]
				if i < len(gen.Params.ReferralLevels) {
					level = new(big.Int).SetUint64(gen.Params.ReferralLevels[i])
				}
				if err := par.Set(key, level); err != nil {
					return err
				}
			}

			maxNames := bcp.InitialRegistryMaxNames
			if gen.Params.RegistryMaxNames != nil {
				maxNames = new(big.Int).SetUint64(*gen.Params.RegistryMaxNames)
			}
			if err := par.Set(bcp.KeyRegistryMaxNames, maxNames); err != nil {
				return err
			}

			if gen.Params.PresaleBeneficiary != nil {
				beneficiary := new(big.Int).SetBytes(gen.Params.PresaleBeneficiary.Bytes())
				if err := par.Set(bcp.KeyPresaleBeneficiary, beneficiary); err != nil {
					return err
				}
			}
			return nil
		})
}

// NewDevnet returns a builder for local development: a handful of funded
// accounts, the first one holding the admin role and collecting presale
// payments.
func NewDevnet() *Builder {
	accounts := DevAccounts()

	gen := &CustomGenesis{
		Accounts: accounts,
		Admins:   []Admin{{Address: accounts[0].Address}},
		Params: Params{
			PresaleBeneficiary: &accounts[0].Address,
		},
	}
	return NewCustomNet(gen)
}

// DevAccounts returns the accounts funded by the devnet genesis.
func DevAccounts() []Account {
	balance := (*HexOrDecimal256)(new(big.Int).Mul(big.NewInt(1_000_000), bcp.RewardScale))

	names := []string{"alice", "bob", "carol", "dave", "eve"}
	accounts := make([]Account, 0, len(names))
	for _, name := range names {
		accounts = append(accounts, Account{
			Address: bcp.BytesToAddress([]byte(name)),
			Balance: balance,
		})
	}
	return accounts
}
