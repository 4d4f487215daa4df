package store

// Schema v1 - catalog entities and association tables.
// Link tables carry no primary key and no foreign keys: duplicate
// pairs are allowed and deleting an entity leaves its link rows behind.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS artists (
  artist_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  country TEXT,
  birth_year INTEGER
);

CREATE TABLE IF NOT EXISTS albums (
  album_id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  release_year INTEGER
);

CREATE TABLE IF NOT EXISTS songs (
  song_id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  duration INTEGER,
  release_year INTEGER
);

CREATE TABLE IF NOT EXISTS genres (
  genre_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT
);

CREATE TABLE IF NOT EXISTS awards (
  award_id INTEGER PRIMARY KEY AUTOINCREMENT,
  award_name TEXT NOT NULL,
  year_won INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS performs (
  artist_id INTEGER NOT NULL,
  song_id INTEGER NOT NULL,
  venue TEXT
);

CREATE TABLE IF NOT EXISTS receives (
  artist_id INTEGER NOT NULL,
  award_id INTEGER NOT NULL,
  role TEXT
);

CREATE TABLE IF NOT EXISTS belongs_to (
  song_id INTEGER NOT NULL,
  genre_id INTEGER NOT NULL,
  assigned_by TEXT
);

-- no_of_songs is repeated on every row of an album and is not kept in sync
CREATE TABLE IF NOT EXISTS contains (
  album_id INTEGER NOT NULL,
  song_id INTEGER NOT NULL,
  no_of_songs INTEGER
);
`

// Schema v2 - lookup indexes for join traversal
const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_artists_name ON artists(name);
CREATE INDEX IF NOT EXISTS idx_albums_title ON albums(title);
CREATE INDEX IF NOT EXISTS idx_songs_title ON songs(title);
CREATE INDEX IF NOT EXISTS idx_genres_name ON genres(name);
CREATE INDEX IF NOT EXISTS idx_awards_year ON awards(year_won DESC, award_name);

CREATE INDEX IF NOT EXISTS idx_performs_artist ON performs(artist_id);
CREATE INDEX IF NOT EXISTS idx_performs_song ON performs(song_id);
CREATE INDEX IF NOT EXISTS idx_receives_artist ON receives(artist_id);
CREATE INDEX IF NOT EXISTS idx_receives_award ON receives(award_id);
CREATE INDEX IF NOT EXISTS idx_belongs_to_song ON belongs_to(song_id);
CREATE INDEX IF NOT EXISTS idx_belongs_to_genre ON belongs_to(genre_id);
CREATE INDEX IF NOT EXISTS idx_contains_album ON contains(album_id);
CREATE INDEX IF NOT EXISTS idx_contains_song ON contains(song_id);
`
