// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/access"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/params"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/presale"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/registry"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/rewards"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/token"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

// contract identifies a builtin contract by its well-known address.
type contract struct {
	Name    string
	Address bcp.Address
}

func newContract(name string) *contract {
	return &contract{name, bcp.ContractAddress(name)}
}

// Builtin contracts binding.
var (
	Params   = &paramsContract{newContract("Params")}
	Access   = &accessContract{newContract("Access")}
	Token    = &tokenContract{newContract("Token")}
	Rewards  = &rewardsContract{newContract("Rewards")}
	Presale  = &presaleContract{newContract("Presale")}
	Registry = &registryContract{newContract("Registry")}
)

type (
	paramsContract   struct{ *contract }
	accessContract   struct{ *contract }
	tokenContract    struct{ *contract }
	rewardsContract  struct{ *contract }
	presaleContract  struct{ *contract }
	registryContract struct{ *contract }
)

func (p *paramsContract) WithState(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

func (a *accessContract) WithState(state *state.State) *access.Access {
	return access.New(a.Address, state)
}

func (t *tokenContract) WithState(state *state.State, sink events.Sink) *token.Token {
	return token.New(t.Address, state, sink)
}

// WithState binds the reward ledger, holding stakes in the token's custody
// under the ledger's own address.
func (r *rewardsContract) WithState(state *state.State, sink events.Sink) *rewards.Rewards {
	tok := Token.WithState(state, events.Nop())
	return rewards.New(r.Address, state, tok.Custodian(r.Address), sink)
}

func (p *presaleContract) WithState(state *state.State, sink events.Sink) *presale.Presale {
	return presale.New(p.Address, state, Params.WithState(state), Token.WithState(state, events.Nop()), sink)
}

func (r *registryContract) WithState(state *state.State, sink events.Sink) *registry.Registry {
	return registry.New(r.Address, state, Access.WithState(state), Params.WithState(state), sink)
}
