/* Copyright (C) 2019 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package superkmerdb persists encoded super-kmers to a MySQL table, one
// row per BigInt inserted through the kmerspan.Sink interface.
package superkmerdb

/* -------------------------------------------------------------------------- */

import "database/sql"
import "fmt"
import "regexp"

import _ "github.com/go-sql-driver/mysql"

import . "github.com/pbenner/kmerspan"

/* -------------------------------------------------------------------------- */

// MySQLSink implements kmerspan.Sink by inserting each BigInt's limbs into
// a MySQL table. The table must already exist (see CreateTable).
type MySQLSink struct {
	db    *sql.DB
	table string
	stmt  *sql.Stmt
}

/* -------------------------------------------------------------------------- */

// validIdentifier allowlists table names: database/sql has no placeholder
// syntax for identifiers, so table is interpolated with fmt.Sprintf below
// and must be checked by hand before that happens.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdentifier(table string) error {
	if !validIdentifier.MatchString(table) {
		return fmt.Errorf("superkmerdb: %q is not a valid table name", table)
	}
	return nil
}

// OpenMySQLSink connects to a MySQL database and prepares an insert
// statement against table. dsn follows the go-sql-driver/mysql format,
// e.g. "user:password@tcp(host:3306)/database". table is restricted to
// validIdentifier before being interpolated into the prepared statement.
func OpenMySQLSink(dsn, table string) (*MySQLSink, error) {
	if err := checkIdentifier(table); err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	stmt, err := db.Prepare(fmt.Sprintf(
		"INSERT INTO %s (limb0, limb1, limb2, limb3) VALUES (?, ?, ?, ?)", table))
	if err != nil {
		db.Close()
		return nil, err
	}
	return &MySQLSink{db: db, table: table, stmt: stmt}, nil
}

// CreateTable creates the backing table for a MySQLSink if it does not
// already exist. table is restricted the same way as in OpenMySQLSink.
func CreateTable(dsn, table string) error {
	if err := checkIdentifier(table); err != nil {
		return err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return err
	}
	_, err = db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			id     BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			limb0  INT UNSIGNED NOT NULL,
			limb1  INT UNSIGNED NOT NULL,
			limb2  INT UNSIGNED NOT NULL,
			limb3  INT UNSIGNED NOT NULL
		)`, table))
	return err
}

/* -------------------------------------------------------------------------- */

// Insert implements kmerspan.Sink.
func (s *MySQLSink) Insert(value BigInt) error {
	l0, l1, l2, l3 := value.Limbs()
	_, err := s.stmt.Exec(l0, l1, l2, l3)
	return err
}

// Close releases the prepared statement and the underlying connection.
func (s *MySQLSink) Close() error {
	if err := s.stmt.Close(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}
