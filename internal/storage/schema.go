package storage

const schema = `
-- The 'categories' table is the closed reference set a flashcard's
-- category must belong to. Seeded once; seeding is idempotent.
CREATE TABLE IF NOT EXISTS categories (
    name TEXT PRIMARY KEY
);

-- The 'flashcards' table stores the saved question-answer pairs.
CREATE TABLE IF NOT EXISTS flashcards (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL,
    answer   TEXT NOT NULL,
    category TEXT NOT NULL,

    FOREIGN KEY(category) REFERENCES categories(name)
);

INSERT OR IGNORE INTO categories (name) VALUES ('Word');
INSERT OR IGNORE INTO categories (name) VALUES ('Grammar');
INSERT OR IGNORE INTO categories (name) VALUES ('Context');
`
