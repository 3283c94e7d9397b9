package db

const Schema = `
CREATE TABLE IF NOT EXISTS dataset (
	year INTEGER NOT NULL PRIMARY KEY,
	built_at INTEGER NOT NULL,
	columns TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS dataset_row (
	year INTEGER NOT NULL,
	idx INTEGER NOT NULL,
	cells TEXT NOT NULL,
	PRIMARY KEY (year, idx)
);
`
