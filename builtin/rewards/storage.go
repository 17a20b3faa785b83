// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/solidity"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

var (
	slotPositions   = nameToSlot("positions")
	slotTotalStaked = nameToSlot("total-staked")
	slotPositionNum = nameToSlot("position-count")
)

func nameToSlot(name string) bcp.Bytes32 {
	return bcp.BytesToBytes32([]byte(name))
}

// storage represents the root storage for the reward ledger.
type storage struct {
	context     *solidity.Context
	positions   *solidity.Mapping[bcp.Address, *Position]
	totalStaked *solidity.Uint256
	positionNum *solidity.Uint256
}

// newStorage creates a new instance of storage.
func newStorage(addr bcp.Address, st *state.State) *storage {
	context := solidity.NewContext(addr, st)
	return &storage{
		context:     context,
		positions:   solidity.NewMapping[bcp.Address, *Position](context, slotPositions),
		totalStaked: solidity.NewUint256(context, slotTotalStaked),
		positionNum: solidity.NewUint256(context, slotPositionNum),
	}
}

func (s *storage) GetPosition(addr bcp.Address) (*Position, error) {
	p, err := s.positions.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	return p.normalize(), nil
}

func (s *storage) SetPosition(addr bcp.Address, pos *Position) error {
	if err := s.positions.Set(addr, pos); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}

func (s *storage) DeletePosition(addr bcp.Address) error {
	if err := s.positions.Delete(addr); err != nil {
		return errors.Wrap(err, "failed to delete position")
	}
	return nil
}

func (s *storage) AddTotalStaked(amount *big.Int) error {
	if err := s.totalStaked.Add(amount); err != nil {
		return errors.Wrap(err, "failed to update total staked")
	}
	return nil
}

func (s *storage) SubTotalStaked(amount *big.Int) error {
	if err := s.totalStaked.Sub(amount); err != nil {
		return errors.Wrap(err, "failed to update total staked")
	}
	return nil
}

func (s *storage) TotalStaked() (*big.Int, error) {
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total staked")
	}
	return total, nil
}

func (s *storage) AddPositionCount(delta int64) error {
	if delta >= 0 {
		return s.positionNum.Add(big.NewInt(delta))
	}
	return s.positionNum.Sub(big.NewInt(-delta))
}

func (s *storage) PositionCount() (*big.Int, error) {
	return s.positionNum.Get()
}
