// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"

	"github.com/ethereum/go-ethereum/rlp"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps an in-memory db shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(commandTableSchema + eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create tables")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

func nullable(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

func (db *LogDB) execInTx(ctx context.Context, proc func(*sql.Tx) error) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Write stores the command and, unless it was reverted, its events.
func (db *LogDB) Write(ctx context.Context, trx *tx.Transaction, receipt *tx.Receipt) error {
	raw, err := rlp.EncodeToBytes(trx)
	if err != nil {
		return errors.Wrap(err, "encode tx")
	}
	err = db.execInTx(ctx, func(sqlTx *sql.Tx) error {
		if _, err := sqlTx.ExecContext(ctx,
			"INSERT INTO command(seq, txID, origin, method, timestamp, reverted, error, output, raw) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			trx.Nonce(),
			trx.ID().Bytes(),
			trx.Origin().Bytes(),
			trx.Clause().Method(),
			trx.Timestamp(),
			receipt.Reverted,
			receipt.Error,
			nullable(receipt.Output),
			raw,
		); err != nil {
			return err
		}
		if receipt.Reverted {
			return nil
		}
		for i, ev := range receipt.Events {
			payload, err := ev.Decode()
			if err != nil {
				return err
			}
			index := payload.Index()
			var subjects [2][]byte
			for j := 0; j < len(index.Subjects) && j < len(subjects); j++ {
				subjects[j] = index.Subjects[j].Bytes()
			}
			if _, err := sqlTx.ExecContext(ctx,
				"INSERT INTO event(seq, eventIndex, txID, timestamp, origin, contract, kind, topic, mergeID, subject0, subject1, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
				trx.Nonce(),
				i,
				trx.ID().Bytes(),
				trx.Timestamp(),
				trx.Origin().Bytes(),
				ev.Contract.Bytes(),
				string(ev.Kind),
				ev.Kind.Topic().Bytes(),
				index.MergeID,
				nullable(subjects[0]),
				nullable(subjects[1]),
				ev.Data,
			); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "write command %v", trx.Nonce())
}

// NextSeq returns the seq the next command should take.
func (db *LogDB) NextSeq(ctx context.Context) (uint64, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRowContext(ctx, "SELECT MAX(seq) FROM command").Scan(&seq); err != nil {
		return 0, errors.Wrap(err, "query max seq")
	}
	if !seq.Valid {
		return 0, nil
	}
	return uint64(seq.Int64) + 1, nil
}

func appendRange(stmt string, args []any, r *Range) (string, []any) {
	if r == nil {
		return stmt, args
	}
	condition := "seq"
	if r.Unit == Time {
		condition = "timestamp"
	}
	args = append(args, r.From)
	stmt += " AND " + condition + " >= ?"
	if r.To >= r.From {
		args = append(args, r.To)
		stmt += " AND " + condition + " <= ?"
	}
	return stmt, args
}

func appendPaging(stmt string, args []any, order Order, orderBy string, options *Options) (string, []any) {
	if order == DESC {
		stmt += " ORDER BY " + orderBy + " DESC"
	} else {
		stmt += " ORDER BY " + orderBy + " ASC"
	}
	if options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, options.Offset, options.Limit)
	}
	return stmt, args
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, eventIndex, txID, timestamp, origin, contract, kind, mergeID, subject0, subject1, data FROM event WHERE 1"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC, eventIndex ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt, args := appendRange(query, args, filter.Range)

	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Kind != nil {
			args = append(args, string(*criteria.Kind))
			stmt += " AND kind = ?"
		}
		if criteria.MergeID != nil {
			args = append(args, *criteria.MergeID)
			stmt += " AND mergeID = ?"
		}
		if criteria.Subject != nil {
			args = append(args, criteria.Subject.Bytes(), criteria.Subject.Bytes())
			stmt += " AND (subject0 = ? OR subject1 = ?)"
		}
		if criteria.Contract != nil {
			args = append(args, criteria.Contract.Bytes())
			stmt += " AND contract = ?"
		}
		stmt += " )"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	orderBy := "seq ASC, eventIndex"
	if filter.Order == DESC {
		orderBy = "seq DESC, eventIndex"
	}
	stmt, args = appendPaging(stmt, args, filter.Order, orderBy, filter.Options)
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterCommands(ctx context.Context, filter *CommandFilter) ([]*Command, error) {
	const query = "SELECT seq, txID, origin, method, timestamp, reverted, error, output, raw FROM command WHERE 1"
	if filter == nil {
		return db.queryCommands(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleCommon(filter.Options, filter.Order, "command")

	var args []any
	stmt, args := appendRange(query, args, filter.Range)
	if filter.Origin != nil {
		args = append(args, filter.Origin.Bytes())
		stmt += " AND origin = ?"
	}
	if filter.Method != nil {
		args = append(args, *filter.Method)
		stmt += " AND method = ?"
	}
	if filter.ExcludeReverted {
		stmt += " AND reverted = 0"
	}
	stmt, args = appendPaging(stmt, args, filter.Order, "seq", filter.Options)
	return db.queryCommands(ctx, stmt, args...)
}

// CommandByID returns the command of the tx, or nil if absent.
func (db *LogDB) CommandByID(ctx context.Context, txID mmt.Bytes32) (*Command, error) {
	cmds, err := db.queryCommands(ctx,
		"SELECT seq, txID, origin, method, timestamp, reverted, error, output, raw FROM command WHERE txID = ?",
		txID.Bytes())
	if err != nil || len(cmds) == 0 {
		return nil, err
	}
	return cmds[0], nil
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       uint64
			index     uint32
			txID      []byte
			timestamp uint64
			origin    []byte
			contract  []byte
			kind      string
			mergeID   uint64
			subjects  [2][]byte
			data      []byte
		)
		if err := rows.Scan(
			&seq,
			&index,
			&txID,
			&timestamp,
			&origin,
			&contract,
			&kind,
			&mergeID,
			&subjects[0],
			&subjects[1],
			&data,
		); err != nil {
			return nil, err
		}
		event := &Event{
			Seq:       seq,
			Index:     index,
			TxID:      mmt.BytesToBytes32(txID),
			Timestamp: timestamp,
			Origin:    mmt.BytesToAddress(origin),
			Contract:  mmt.BytesToAddress(contract),
			Kind:      tx.EventKind(kind),
			MergeID:   mergeID,
			Data:      data,
		}
		for _, s := range subjects {
			if len(s) > 0 {
				event.Subjects = append(event.Subjects, mmt.BytesToAddress(s))
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryCommands(ctx context.Context, stmt string, args ...any) ([]*Command, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query commands")
	}
	defer rows.Close()

	var commands []*Command
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			cmd      Command
			txID     []byte
			origin   []byte
			errMsg   sql.NullString
			raw      []byte
			reverted bool
		)
		if err := rows.Scan(
			&cmd.Seq,
			&txID,
			&origin,
			&cmd.Method,
			&cmd.Timestamp,
			&reverted,
			&errMsg,
			&cmd.Output,
			&raw,
		); err != nil {
			return nil, err
		}
		cmd.TxID = mmt.BytesToBytes32(txID)
		cmd.Origin = mmt.BytesToAddress(origin)
		cmd.Reverted = reverted
		cmd.Error = errMsg.String

		var trx tx.Transaction
		if err := rlp.DecodeBytes(raw, &trx); err != nil {
			return nil, errors.Wrapf(err, "decode command %v", cmd.Seq)
		}
		cmd.Tx = &trx
		commands = append(commands, &cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return commands, nil
}
