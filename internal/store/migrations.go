package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create users and dictionary tables",
		SQL: `
			CREATE TABLE users (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				login      TEXT NOT NULL UNIQUE,
				password   TEXT NOT NULL DEFAULT '',
				api_token  TEXT NOT NULL DEFAULT '',
				status     TEXT NOT NULL DEFAULT 'user',
				created_at TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE UNIQUE INDEX idx_users_token ON users (api_token) WHERE api_token != '';

			CREATE TABLE companies (
				id   INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE
			);

			CREATE TABLE cities (
				id   INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE
			);

			CREATE TABLE categories (
				id   INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE
			);
		`,
	},
	{
		Version: 2,
		Name:    "create receipts and products",
		SQL: `
			CREATE TABLE receipts (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				company_id INTEGER REFERENCES companies(id),
				city_id    INTEGER REFERENCES cities(id),
				total      REAL NOT NULL DEFAULT 0,
				discount   REAL NOT NULL DEFAULT 0,
				added_at   TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_receipts_user_date ON receipts (user_id, added_at);

			CREATE TABLE products (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				receipt_id  INTEGER NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
				name        TEXT NOT NULL,
				category_id INTEGER REFERENCES categories(id),
				price       REAL NOT NULL DEFAULT 0,
				quantity    REAL NOT NULL DEFAULT 1,
				unit_price  REAL NOT NULL DEFAULT 0,
				unit        TEXT NOT NULL DEFAULT '',
				ean         TEXT
			);

			CREATE INDEX idx_products_receipt ON products (receipt_id);
			CREATE INDEX idx_products_name ON products (name);
		`,
	},
	{
		Version: 3,
		Name:    "create budgets, shopping lists and notifications",
		SQL: `
			CREATE TABLE budget_limits (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				category_id INTEGER NOT NULL REFERENCES categories(id),
				amount      REAL NOT NULL,
				created_at  TEXT NOT NULL DEFAULT (datetime('now')),
				UNIQUE (user_id, category_id)
			);

			CREATE TABLE shopping_lists (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				name       TEXT NOT NULL,
				created_at TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE TABLE shopping_list_items (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				list_id    INTEGER NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
				product_id INTEGER REFERENCES products(id),
				name       TEXT NOT NULL,
				quantity   REAL NOT NULL DEFAULT 1
			);

			CREATE INDEX idx_list_items_list ON shopping_list_items (list_id);

			CREATE TABLE notifications (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				limit_id   INTEGER REFERENCES budget_limits(id) ON DELETE SET NULL,
				type       TEXT NOT NULL DEFAULT 'budget',
				message    TEXT NOT NULL,
				read       INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_notifications_user ON notifications (user_id, read);
		`,
	},
	{
		Version: 4,
		Name:    "create nutrition and activity log",
		SQL: `
			CREATE TABLE ean_codes (
				ean           TEXT PRIMARY KEY,
				name          TEXT NOT NULL DEFAULT '',
				energy_kcal   REAL NOT NULL DEFAULT 0,
				fat           REAL NOT NULL DEFAULT 0,
				saturated_fat REAL NOT NULL DEFAULT 0,
				carbohydrates REAL NOT NULL DEFAULT 0,
				sugars        REAL NOT NULL DEFAULT 0,
				protein       REAL NOT NULL DEFAULT 0,
				salt          REAL NOT NULL DEFAULT 0,
				allergens     TEXT NOT NULL DEFAULT ''
			);

			CREATE TABLE activity_log (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				action      TEXT NOT NULL,
				user_status TEXT NOT NULL DEFAULT '',
				details     TEXT NOT NULL DEFAULT '',
				timestamp   TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_activity_user ON activity_log (user_id, timestamp);
			CREATE INDEX idx_activity_action ON activity_log (user_id, action);
		`,
	},
	{
		Version: 5,
		Name:    "create docs chunks with FTS5",
		SQL: `
			CREATE TABLE docs_chunks (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				title      TEXT NOT NULL DEFAULT '',
				content    TEXT NOT NULL,
				created_at TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE VIRTUAL TABLE docs_fts USING fts5(
				title,
				content,
				content='docs_chunks',
				content_rowid='id'
			);

			CREATE TRIGGER docs_ai AFTER INSERT ON docs_chunks BEGIN
				INSERT INTO docs_fts(rowid, title, content)
				VALUES (new.id, new.title, new.content);
			END;

			CREATE TRIGGER docs_ad AFTER DELETE ON docs_chunks BEGIN
				INSERT INTO docs_fts(docs_fts, rowid, title, content)
				VALUES ('delete', old.id, old.title, old.content);
			END;

			CREATE TRIGGER docs_au AFTER UPDATE ON docs_chunks BEGIN
				INSERT INTO docs_fts(docs_fts, rowid, title, content)
				VALUES ('delete', old.id, old.title, old.content);
				INSERT INTO docs_fts(rowid, title, content)
				VALUES (new.id, new.title, new.content);
			END;
		`,
	},
}
