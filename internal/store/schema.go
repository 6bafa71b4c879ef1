package store

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS biography (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	bio_text      TEXT NOT NULL DEFAULT '',
	education     TEXT NOT NULL DEFAULT '[]',
	achievements  TEXT NOT NULL DEFAULT '[]',
	current_roles TEXT NOT NULL DEFAULT '[]',
	discography   TEXT NOT NULL DEFAULT '[]',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME
)`, `
CREATE TABLE IF NOT EXISTS ensembles (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL UNIQUE,
	description    TEXT NOT NULL DEFAULT '',
	formation_year INTEGER,
	musical_style  TEXT NOT NULL DEFAULT '',
	vision         TEXT NOT NULL DEFAULT '',
	contact_email  TEXT NOT NULL DEFAULT '',
	contact_phone  TEXT NOT NULL DEFAULT '',
	members        TEXT NOT NULL DEFAULT '[]',
	highlights     TEXT NOT NULL DEFAULT '[]',
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     DATETIME
)`, `
CREATE TABLE IF NOT EXISTS events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	date          TEXT NOT NULL,
	time          TEXT NOT NULL DEFAULT '',
	venue         TEXT NOT NULL DEFAULT '',
	location      TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	ensemble_name TEXT NOT NULL DEFAULT '',
	event_type    TEXT NOT NULL DEFAULT '',
	is_past       BOOLEAN NOT NULL DEFAULT 0,
	photo_url     TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME
)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,
	`CREATE INDEX IF NOT EXISTS idx_events_is_past ON events(is_past)`, `
CREATE TABLE IF NOT EXISTS videos (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT NOT NULL,
	youtube_id     TEXT NOT NULL UNIQUE,
	youtube_url    TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	thumbnail_url  TEXT NOT NULL DEFAULT '',
	duration       TEXT NOT NULL DEFAULT '',
	published_date TEXT,
	category       TEXT NOT NULL DEFAULT '',
	event_id       INTEGER REFERENCES events(id) ON DELETE SET NULL,
	is_featured    BOOLEAN NOT NULL DEFAULT 0,
	display_order  INTEGER NOT NULL DEFAULT 0,
	is_visible     BOOLEAN NOT NULL DEFAULT 1,
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     DATETIME
)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_listing ON videos(is_visible, display_order)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_event ON videos(event_id)`, `
CREATE TABLE IF NOT EXISTS playlists (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	playlist_id   TEXT NOT NULL UNIQUE,
	playlist_url  TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	video_count   INTEGER,
	is_featured   BOOLEAN NOT NULL DEFAULT 0,
	display_order INTEGER NOT NULL DEFAULT 0,
	is_visible    BOOLEAN NOT NULL DEFAULT 1,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME
)`,
	`CREATE INDEX IF NOT EXISTS idx_playlists_listing ON playlists(is_visible, display_order)`, `
CREATE TABLE IF NOT EXISTS classifier_runs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	run_date        TEXT NOT NULL,
	marked_past     INTEGER NOT NULL,
	marked_upcoming INTEGER NOT NULL,
	ran_at          DATETIME NOT NULL
)`,
}

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS biography (
	id            BIGSERIAL PRIMARY KEY,
	name          VARCHAR(255) NOT NULL,
	title         VARCHAR(500) NOT NULL DEFAULT '',
	bio_text      TEXT NOT NULL DEFAULT '',
	education     TEXT NOT NULL DEFAULT '[]',
	achievements  TEXT NOT NULL DEFAULT '[]',
	current_roles TEXT NOT NULL DEFAULT '[]',
	discography   TEXT NOT NULL DEFAULT '[]',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ
)`, `
CREATE TABLE IF NOT EXISTS ensembles (
	id             BIGSERIAL PRIMARY KEY,
	name           VARCHAR(255) NOT NULL UNIQUE,
	description    TEXT NOT NULL DEFAULT '',
	formation_year INTEGER,
	musical_style  TEXT NOT NULL DEFAULT '',
	vision         TEXT NOT NULL DEFAULT '',
	contact_email  VARCHAR(255) NOT NULL DEFAULT '',
	contact_phone  VARCHAR(50) NOT NULL DEFAULT '',
	members        TEXT NOT NULL DEFAULT '[]',
	highlights     TEXT NOT NULL DEFAULT '[]',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ
)`, `
CREATE TABLE IF NOT EXISTS events (
	id            BIGSERIAL PRIMARY KEY,
	title         VARCHAR(500) NOT NULL,
	date          DATE NOT NULL,
	time          VARCHAR(50) NOT NULL DEFAULT '',
	venue         VARCHAR(255) NOT NULL DEFAULT '',
	location      VARCHAR(255) NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	ensemble_name VARCHAR(255) NOT NULL DEFAULT '',
	event_type    VARCHAR(100) NOT NULL DEFAULT '',
	is_past       BOOLEAN NOT NULL DEFAULT FALSE,
	photo_url     VARCHAR(500) NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ
)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,
	`CREATE INDEX IF NOT EXISTS idx_events_is_past ON events(is_past)`, `
CREATE TABLE IF NOT EXISTS videos (
	id             BIGSERIAL PRIMARY KEY,
	title          VARCHAR(500) NOT NULL,
	youtube_id     VARCHAR(50) NOT NULL UNIQUE,
	youtube_url    VARCHAR(500) NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	thumbnail_url  VARCHAR(500) NOT NULL DEFAULT '',
	duration       VARCHAR(20) NOT NULL DEFAULT '',
	published_date DATE,
	category       VARCHAR(100) NOT NULL DEFAULT '',
	event_id       BIGINT REFERENCES events(id) ON DELETE SET NULL,
	is_featured    BOOLEAN NOT NULL DEFAULT FALSE,
	display_order  INTEGER NOT NULL DEFAULT 0,
	is_visible     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ
)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_listing ON videos(is_visible, display_order)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_event ON videos(event_id)`, `
CREATE TABLE IF NOT EXISTS playlists (
	id            BIGSERIAL PRIMARY KEY,
	title         VARCHAR(500) NOT NULL,
	playlist_id   VARCHAR(100) NOT NULL UNIQUE,
	playlist_url  VARCHAR(500) NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	thumbnail_url VARCHAR(500) NOT NULL DEFAULT '',
	video_count   INTEGER,
	is_featured   BOOLEAN NOT NULL DEFAULT FALSE,
	display_order INTEGER NOT NULL DEFAULT 0,
	is_visible    BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ
)`,
	`CREATE INDEX IF NOT EXISTS idx_playlists_listing ON playlists(is_visible, display_order)`, `
CREATE TABLE IF NOT EXISTS classifier_runs (
	id              BIGSERIAL PRIMARY KEY,
	run_date        DATE NOT NULL,
	marked_past     INTEGER NOT NULL,
	marked_upcoming INTEGER NOT NULL,
	ran_at          TIMESTAMPTZ NOT NULL
)`,
}

func schemaFor(d Dialect) []string {
	if d == Postgres {
		return postgresSchema
	}
	return sqliteSchema
}
