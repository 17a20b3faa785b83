// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// create a table for emitted events
const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	contract blob(20),
	topic blob(32),
	name text,
	account blob(20),
	amount blob,
	tick decimal(32,0)
);

CREATE INDEX if not exists tickIndex on event(tick);
CREATE INDEX if not exists contractIndex on event(contract);
CREATE INDEX if not exists topicIndex on event(topic);
CREATE INDEX if not exists accountIndex on event(account);
`
