package store

// Schema creates the tables if they do not exist.
//
// Amounts are stored as decimal text to keep them exact, dates as YYYY-MM-DD.
const Schema = `
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	invested TEXT NOT NULL,
	join_date TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS profits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	profit_date TEXT NOT NULL UNIQUE,
	total_profit TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT ''
);
`
