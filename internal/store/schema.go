package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    kind                 TEXT NOT NULL,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS recurring_templates (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    row_num              INTEGER NOT NULL,
    transaction_name     TEXT NOT NULL,
    amount               TEXT NOT NULL,
    frequency            TEXT NOT NULL,
    on_date              TEXT NOT NULL,
    precise_on_date      INTEGER NOT NULL DEFAULT 0,
    end_date             TEXT,
    category             TEXT,
    charge_to            TEXT NOT NULL,
    PRIMARY KEY (file_path, row_num)
);

CREATE TABLE IF NOT EXISTS supplemental_transactions (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    row_num              INTEGER NOT NULL,
    date                 TEXT NOT NULL,
    transaction_amount   TEXT NOT NULL,
    transaction_name     TEXT NOT NULL,
    category             TEXT,
    charge_to            TEXT NOT NULL,
    PRIMARY KEY (file_path, row_num)
);

CREATE TABLE IF NOT EXISTS account_balances (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    row_num              INTEGER NOT NULL,
    account              TEXT,
    type                 TEXT NOT NULL,
    current_balance      TEXT NOT NULL,
    statement_balance    TEXT NOT NULL,
    PRIMARY KEY (file_path, row_num)
);

CREATE TABLE IF NOT EXISTS file_diagnostics (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    kind                 TEXT NOT NULL,
    row_num              INTEGER NOT NULL,
    transaction_name     TEXT,
    value                TEXT,
    message              TEXT NOT NULL,
    PRIMARY KEY (file_path, seq)
);
`
