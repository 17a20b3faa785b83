// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/access"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/params"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/reverts"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/solidity"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

var (
	slotEntries = bcp.BytesToBytes32([]byte("entries"))
	slotNameNum = bcp.BytesToBytes32([]byte("name-count"))

	ErrUnauthorized = reverts.New("caller is not an admin")
	ErrNameTaken    = reverts.New("name already registered")
	ErrNotFound     = reverts.New("name not registered")
	ErrLimitReached = reverts.New("registry is full")
)

// nameKey adapts a registry name to a storage mapping key.
type nameKey string

func (n nameKey) Bytes() []byte {
	return []byte(n)
}

// Entry is a registered record.
type Entry struct {
	Owner bcp.Address
	Data  []byte
}

// Registry implements the admin-gated name record store.
// Every mutation requires the caller to hold the admin role.
type Registry struct {
	context *solidity.Context
	access  *access.Access
	params  *params.Params
	entries *solidity.Mapping[nameKey, *Entry]
	nameNum *solidity.Uint256
	sink    events.Sink
}

// New create a new instance.
func New(addr bcp.Address, st *state.State, access *access.Access, params *params.Params, sink events.Sink) *Registry {
	context := solidity.NewContext(addr, st)
	return &Registry{
		context: context,
		access:  access,
		params:  params,
		entries: solidity.NewMapping[nameKey, *Entry](context, slotEntries),
		nameNum: solidity.NewUint256(context, slotNameNum),
		sink:    sink,
	}
}

// Get returns the entry registered under the given name.
func (r *Registry) Get(name string) (*Entry, bool, error) {
	found, err := r.entries.Has(nameKey(name))
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to probe entry")
	}
	if !found {
		return nil, false, nil
	}
	entry, err := r.entries.Get(nameKey(name))
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get entry")
	}
	return entry, true, nil
}

// Count returns the number of registered names.
func (r *Registry) Count() (*big.Int, error) {
	return r.nameNum.Get()
}

// Add registers a new name owned by the caller.
func (r *Registry) Add(caller bcp.Address, name string, data []byte, tick uint64) error {
	if err := r.authorize(caller); err != nil {
		return err
	}
	taken, err := r.entries.Has(nameKey(name))
	if err != nil {
		return errors.Wrap(err, "failed to probe entry")
	}
	if taken {
		return ErrNameTaken
	}

	maxNames, err := r.params.Get(bcp.KeyRegistryMaxNames)
	if err != nil {
		return errors.Wrap(err, "failed to get max names")
	}
	count, err := r.nameNum.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get name count")
	}
	// a zero limit means unbounded
	if maxNames.Sign() > 0 && count.Cmp(maxNames) >= 0 {
		return ErrLimitReached
	}

	if err := r.entries.Set(nameKey(name), &Entry{Owner: caller, Data: data}); err != nil {
		return errors.Wrap(err, "failed to set entry")
	}
	if err := r.nameNum.Add(big.NewInt(1)); err != nil {
		return errors.Wrap(err, "failed to update name count")
	}
	return r.emit(events.NameRegistryAdded, caller, tick)
}

// Update replaces the data of an existing name. Ownership transfers to the
// caller, matching add semantics for admins.
func (r *Registry) Update(caller bcp.Address, name string, data []byte, tick uint64) error {
	if err := r.authorize(caller); err != nil {
		return err
	}
	found, err := r.entries.Has(nameKey(name))
	if err != nil {
		return errors.Wrap(err, "failed to probe entry")
	}
	if !found {
		return ErrNotFound
	}
	if err := r.entries.Set(nameKey(name), &Entry{Owner: caller, Data: data}); err != nil {
		return errors.Wrap(err, "failed to set entry")
	}
	return r.emit(events.NameRegistryUpdated, caller, tick)
}

// Remove erases an existing name.
func (r *Registry) Remove(caller bcp.Address, name string, tick uint64) error {
	if err := r.authorize(caller); err != nil {
		return err
	}
	found, err := r.entries.Has(nameKey(name))
	if err != nil {
		return errors.Wrap(err, "failed to probe entry")
	}
	if !found {
		return ErrNotFound
	}
	if err := r.entries.Delete(nameKey(name)); err != nil {
		return errors.Wrap(err, "failed to delete entry")
	}
	if err := r.nameNum.Sub(big.NewInt(1)); err != nil {
		return errors.Wrap(err, "failed to update name count")
	}
	return r.emit(events.NameRegistryRemoved, caller, tick)
}

func (r *Registry) authorize(caller bcp.Address) error {
	isAdmin, err := r.access.Has(caller)
	if err != nil {
		return errors.Wrap(err, "failed to check admin role")
	}
	if !isAdmin {
		return ErrUnauthorized
	}
	return nil
}

func (r *Registry) emit(name string, caller bcp.Address, tick uint64) error {
	return r.sink.Emit(&events.Event{
		Contract: r.context.Address(),
		Name:     name,
		Account:  caller,
		Amount:   new(big.Int),
		Tick:     tick,
	})
}
