// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:polls.db")

SQLite connections get foreign keys and a busy timeout, and the pool is
limited to one connection.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on PostgreSQL and SQLite.

# Tables

  - polls: id (inline result id), title, creator_id
  - options: id (poll id + title fingerprint), poll_id, title, position
  - votes: user_id, option_id, poll_id, cast_at

# Relationships

	polls 1──* options
	options 1──* votes

votes also carries poll_id so that UNIQUE (poll_id, user_id) limits each
user to one vote per poll. All foreign keys use ON DELETE CASCADE.
*/
package db
