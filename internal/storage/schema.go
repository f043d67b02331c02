package storage

const schema = `
-- The 'activity' table is an append-only log of UI events that changed state.
-- Nothing reads it back into the deck; it survives restarts for review only.
CREATE TABLE IF NOT EXISTS activity (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session TEXT NOT NULL,
    action TEXT NOT NULL,
    card_id INTEGER,
    detail TEXT NOT NULL DEFAULT '',
    recorded_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS activity_session_idx ON activity(session);
`
