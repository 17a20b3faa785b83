// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds matched events by tick, inclusive on both ends.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects stored events. A nil field matches everything.
type Filter struct {
	Contract *bcp.Address
	Names    []string
	Account  *bcp.Address
	Range    *Range
	Options  *Options
	Order    Order // default asc
}

// Record is a stored event with its insertion sequence number.
type Record struct {
	Seq uint64
	events.Event
}

// EventDB is the sqlite backed store of emitted contract events.
// It implements events.Sink, so contracts can be wired to it directly.
type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open an event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close close the event db.
func (db *EventDB) Close() error {
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

// Emit stores a single event, satisfying events.Sink.
func (db *EventDB) Emit(ev *events.Event) error {
	return db.Append([]*events.Event{ev})
}

// Append stores a batch of events in one transaction.
func (db *EventDB) Append(evs []*events.Event) error {
	if len(evs) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, ev := range evs {
		if _, err := tx.Exec(
			"INSERT INTO event(contract, topic, name, account, amount, tick) VALUES (?, ?, ?, ?, ?, ?);",
			ev.Contract.Bytes(),
			ev.Topic().Bytes(),
			ev.Name,
			ev.Account.Bytes(),
			amountValue(ev.Amount),
			ev.Tick,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricsAppendCount().Add(int64(len(evs)))
	return nil
}

// Filter returns stored events matching the filter, in sequence order.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Record, error) {
	if filter == nil {
		return db.query(ctx, "SELECT seq, contract, name, account, amount, tick FROM event ORDER BY seq ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := "SELECT seq, contract, name, account, amount, tick FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND tick >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND tick <= ? "
		}
	}
	if filter.Contract != nil {
		args = append(args, filter.Contract.Bytes())
		stmt += " AND contract = ? "
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}
	if len(filter.Names) > 0 {
		stmt += " AND topic IN ("
		for i, name := range filter.Names {
			if i > 0 {
				stmt += ","
			}
			stmt += "?"
			args = append(args, (&events.Event{Name: name}).Topic().Bytes())
		}
		stmt += ") "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Record, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq      uint64
			contract []byte
			name     string
			account  []byte
			amount   []byte
			tick     uint64
		)
		if err := rows.Scan(
			&seq,
			&contract,
			&name,
			&account,
			&amount,
			&tick,
		); err != nil {
			return nil, err
		}
		records = append(records, &Record{
			Seq: seq,
			Event: events.Event{
				Contract: bcp.BytesToAddress(contract),
				Name:     name,
				Account:  bcp.BytesToAddress(account),
				Amount:   new(big.Int).SetBytes(amount),
				Tick:     tick,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func amountValue(amount *big.Int) []byte {
	if amount == nil {
		return nil
	}
	return amount.Bytes()
}
