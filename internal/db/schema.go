package db

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    page INTEGER NOT NULL,
    total_pages INTEGER NOT NULL,
    search TEXT,
    filter_homeworld TEXT,
    filter_film TEXT,
    filter_species TEXT,
    created_at TEXT NOT NULL
);
`

const createSnapshotPeopleTable = `
CREATE TABLE IF NOT EXISTS snapshot_people (
    snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    height TEXT,
    mass TEXT,
    birth_year TEXT,
    created TEXT,
    films TEXT,
    species TEXT,
    homeworld TEXT,
    url TEXT,
    color TEXT NOT NULL,
    PRIMARY KEY (snapshot_id, position)
);

CREATE INDEX IF NOT EXISTS idx_snapshot_people_name ON snapshot_people(name);
`

const insertSnapshot = `
INSERT INTO snapshots (
    id, page, total_pages, search, filter_homeworld, filter_film, filter_species, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const insertSnapshotPerson = `
INSERT INTO snapshot_people (
    snapshot_id, position, name, height, mass, birth_year, created,
    films, species, homeworld, url, color
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectSnapshot = `
SELECT id, page, total_pages, search, filter_homeworld, filter_film, filter_species, created_at
FROM snapshots WHERE id = ?
`

const selectSnapshotPeople = `
SELECT name, height, mass, birth_year, created, films, species, homeworld, url, color
FROM snapshot_people WHERE snapshot_id = ?
ORDER BY position
`

const selectSnapshotIDs = `
SELECT id FROM snapshots ORDER BY created_at DESC
`
