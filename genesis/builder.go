// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

// Builder helper to build the genesis state.
type Builder struct {
	stateProcs []func(state *state.State) error
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build creates a fresh state and applies all presets to it.
func (b *Builder) Build() (*state.State, error) {
	st := state.New()
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}
	return st, nil
}
