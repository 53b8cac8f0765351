package database

type migration struct {
	id          MigrationId
	description string
	query       string
}

var migrations = []migration{
	{
		id:          1,
		description: "Images and fingerprints",
		query: `
			CREATE TABLE image (
			    id INTEGER PRIMARY KEY,
			    path TEXT,
			    file_name TEXT,
			    directory TEXT,
			    byte_size INT,
			    modified_timestamp DATETIME,

			    UNIQUE (path)
			);

			CREATE TABLE fingerprint (
			    image_id INTEGER,
			    pattern_size INT,
			    pattern BLOB,
			    shuffled_pattern BLOB,
			    signature BLOB,
			    shuffled_signature BLOB,

			    FOREIGN KEY(image_id) REFERENCES image(id) ON DELETE CASCADE,
			    UNIQUE (image_id)
			);
		`,
	},
	{
		id:          2,
		description: "Distance runs",
		query: `
			CREATE TABLE run (
			    id TEXT PRIMARY KEY,
			    started_timestamp DATETIME,
			    pattern_size INT,
			    resampler TEXT
			);

			CREATE TABLE image_distance (
			    run_id TEXT,
			    image_id INTEGER,
			    other_image_id INTEGER,
			    pattern REAL,
			    shuffled_pattern REAL,
			    signature REAL,
			    shuffled_signature REAL,

			    FOREIGN KEY(run_id) REFERENCES run(id) ON DELETE CASCADE,
			    FOREIGN KEY(image_id) REFERENCES image(id) ON DELETE CASCADE,
			    FOREIGN KEY(other_image_id) REFERENCES image(id) ON DELETE CASCADE,
			    UNIQUE (run_id, image_id, other_image_id)
			);

			CREATE INDEX image_distance_run_idx ON image_distance (run_id);
		`,
	},
}
