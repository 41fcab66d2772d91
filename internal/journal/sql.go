package journal

const (
	initSchemaSQL = `
CREATE TABLE IF NOT EXISTS outcomes (
    id          TEXT PRIMARY KEY,
    at          TIMESTAMP NOT NULL,
    source      TEXT NOT NULL DEFAULT '',
    command     TEXT NOT NULL,
    action      TEXT NOT NULL,
    success     BOOLEAN NOT NULL,
    note        TEXT,
    state       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_outcomes_at ON outcomes (at);`

	insertOutcomeSQL = `
INSERT INTO outcomes (id,
                      at,
                      source,
                      command,
                      action,
                      success,
                      note,
                      state)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectRecentSQL = `
SELECT 
    id, 
    at, 
    source, 
    command, 
    action, 
    success, 
    note, 
    state 
FROM outcomes 
ORDER BY at DESC, rowid DESC 
LIMIT ?`

	countOutcomesSQL = `SELECT COUNT(*) FROM outcomes`
)
