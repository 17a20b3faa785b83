// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/eventdb"
)

var (
	rewardsAddr = bcp.BytesToAddress([]byte("rewards"))
	presaleAddr = bcp.BytesToAddress([]byte("presale"))
	acc1        = bcp.BytesToAddress([]byte("acc1"))
	acc2        = bcp.BytesToAddress([]byte("acc2"))
)

func newTestDB(t *testing.T) *eventdb.EventDB {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *eventdb.EventDB) {
	evs := []*events.Event{
		{Contract: rewardsAddr, Name: events.NameStaked, Account: acc1, Amount: big.NewInt(100), Tick: 1},
		{Contract: rewardsAddr, Name: events.NameStaked, Account: acc2, Amount: big.NewInt(200), Tick: 5},
		{Contract: presaleAddr, Name: events.NameTokensPurchased, Account: acc1, Amount: big.NewInt(5000), Tick: 7},
		{Contract: rewardsAddr, Name: events.NameWithdrawn, Account: acc1, Amount: big.NewInt(101), Tick: 14401},
	}
	require.NoError(t, db.Append(evs))
}

func TestAppendAndFilterAll(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	records, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, records, 4)

	// sequence order matches insertion order
	assert.Equal(t, events.NameStaked, records[0].Name)
	assert.Equal(t, big.NewInt(100), records[0].Amount)
	assert.Equal(t, uint64(1), records[0].Tick)
	assert.Equal(t, events.NameWithdrawn, records[3].Name)
	assert.True(t, records[0].Seq < records[3].Seq)
}

func TestFilterByContract(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	records, err := db.Filter(context.Background(), &eventdb.Filter{Contract: &rewardsAddr})
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, rewardsAddr, r.Contract)
	}
}

func TestFilterByName(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	records, err := db.Filter(context.Background(), &eventdb.Filter{
		Names: []string{events.NameStaked, events.NameWithdrawn},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)

	records, err = db.Filter(context.Background(), &eventdb.Filter{
		Names: []string{events.NameTokensPurchased},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, presaleAddr, records[0].Contract)
}

func TestFilterByAccountAndRange(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	records, err := db.Filter(context.Background(), &eventdb.Filter{
		Account: &acc1,
		Range:   &eventdb.Range{From: 1, To: 100},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, acc1, r.Account)
		assert.LessOrEqual(t, r.Tick, uint64(100))
	}
}

func TestFilterOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	records, err := db.Filter(context.Background(), &eventdb.Filter{
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Offset: 0, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, events.NameWithdrawn, records[0].Name)
	assert.True(t, records[0].Seq > records[1].Seq)
}

func TestEmitAsSink(t *testing.T) {
	db := newTestDB(t)

	var sink events.Sink = db
	require.NoError(t, sink.Emit(&events.Event{
		Contract: rewardsAddr,
		Name:     events.NameStaked,
		Account:  acc1,
		Amount:   big.NewInt(42),
		Tick:     9,
	}))

	records, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, big.NewInt(42), records[0].Amount)
}

func TestFilterCancelledContext(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Filter(ctx, nil)
	assert.Error(t, err)
}
