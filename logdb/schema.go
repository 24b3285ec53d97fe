// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// commandTableSchema holds every executed command, including rejected ones.
const commandTableSchema = `CREATE TABLE IF NOT EXISTS command (
	seq INTEGER PRIMARY KEY,
	txID BLOB(32) NOT NULL,
	origin BLOB(20) NOT NULL,
	method TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	reverted INTEGER NOT NULL,
	error TEXT,
	output BLOB,
	raw BLOB NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_command_txID ON command(txID);
CREATE INDEX IF NOT EXISTS idx_command_origin ON command(origin);
CREATE INDEX IF NOT EXISTS idx_command_method ON command(method);
`

// eventTableSchema holds events of accepted commands.
const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	txID BLOB(32) NOT NULL,
	timestamp INTEGER NOT NULL,
	origin BLOB(20) NOT NULL,
	contract BLOB(20) NOT NULL,
	kind TEXT NOT NULL,
	topic BLOB(32) NOT NULL,
	mergeID INTEGER NOT NULL,
	subject0 BLOB(20),
	subject1 BLOB(20),
	data BLOB,
	PRIMARY KEY (seq, eventIndex)
);

CREATE INDEX IF NOT EXISTS idx_event_kind ON event(kind);
CREATE INDEX IF NOT EXISTS idx_event_mergeID ON event(mergeID);
CREATE INDEX IF NOT EXISTS idx_event_subject0 ON event(subject0);
CREATE INDEX IF NOT EXISTS idx_event_subject1 ON event(subject1);
`
