// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
)

// CustomGenesis is a user customized genesis state.
type CustomGenesis struct {
	Accounts []Account `json:"accounts"`
	Admins   []Admin   `json:"admins"`
	Params   Params    `json:"params"`
}

// Account is an account funded at genesis.
type Account struct {
	Address bcp.Address      `json:"address"`
	Balance *HexOrDecimal256 `json:"balance"`
}

// Admin is an address granted the admin role at genesis.
type Admin struct {
	Address bcp.Address `json:"address"`
}

// Params are the governance params seeded at genesis.
// Nil fields fall back to the canonical initial values.
type Params struct {
	PresaleRate        *HexOrDecimal256 `json:"presaleRate"`
	ReferralLevels     []uint64         `json:"referralLevels"`
	RegistryMaxNames   *uint64          `json:"registryMaxNames"`
	PresaleBeneficiary *bcp.Address     `json:"presaleBeneficiary"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
// Copied from go-ethereum/common/math and implement json. Marshaler
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		if err = (*big.Int)(i).UnmarshalJSON(input); err != nil {
			return err
		}
		return nil
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}
