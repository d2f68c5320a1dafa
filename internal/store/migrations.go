package store

// postgresSchema is the idempotent DDL for the Postgres backend. The
// buyer_deal_scores table carries both the scoring columns (written by
// the engine) and the human-decision columns (approved, passed, hidden,
// override_score) written only by the outreach workflow.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS trackers (
	id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name               TEXT NOT NULL,
	industry           TEXT NOT NULL DEFAULT '',
	geography_weight   INT,
	size_weight        INT,
	service_mix_weight INT,
	owner_goals_weight INT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS deals (
	id                TEXT PRIMARY KEY,
	tracker_id        TEXT NOT NULL,
	name              TEXT NOT NULL,
	revenue           DOUBLE PRECISION,
	ebitda_amount     DOUBLE PRECISION,
	ebitda_percentage DOUBLE PRECISION,
	location_count    INT,
	geography         TEXT[] NOT NULL DEFAULT '{}',
	headquarters      TEXT NOT NULL DEFAULT '',
	service_mix       TEXT NOT NULL DEFAULT '',
	business_model    TEXT NOT NULL DEFAULT '',
	owner_goals       TEXT NOT NULL DEFAULT '',
	industry_type     TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS buyers (
	id                        TEXT PRIMARY KEY,
	tracker_id                TEXT NOT NULL,
	pe_firm_name              TEXT NOT NULL,
	platform_company_name     TEXT,
	hq_state                  TEXT,
	hq_city                   TEXT,
	target_geographies        TEXT[] NOT NULL DEFAULT '{}',
	geographic_footprint      TEXT[] NOT NULL DEFAULT '{}',
	service_regions           TEXT[] NOT NULL DEFAULT '{}',
	geographic_exclusions     TEXT[] NOT NULL DEFAULT '{}',
	min_revenue               DOUBLE PRECISION,
	max_revenue               DOUBLE PRECISION,
	revenue_sweet_spot        DOUBLE PRECISION,
	min_ebitda                DOUBLE PRECISION,
	max_ebitda                DOUBLE PRECISION,
	ebitda_sweet_spot         DOUBLE PRECISION,
	services_offered          TEXT,
	target_services           TEXT[] NOT NULL DEFAULT '{}',
	service_mix_prefs         TEXT,
	industry_exclusions       TEXT[] NOT NULL DEFAULT '{}',
	owner_transition_goals    TEXT,
	owner_roll_requirement    TEXT,
	thesis_summary            TEXT,
	key_quotes                TEXT[] NOT NULL DEFAULT '{}',
	business_model_prefs      TEXT,
	business_model_exclusions TEXT,
	acquisition_appetite      TEXT,
	acquisition_frequency     TEXT,
	total_acquisitions        INT,
	last_acquisition_date     TIMESTAMPTZ,
	deal_breakers             TEXT[] NOT NULL DEFAULT '{}',
	created_at                TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_buyers_tracker ON buyers(tracker_id);

CREATE TABLE IF NOT EXISTS call_intelligence (
	id             TEXT PRIMARY KEY,
	deal_id        TEXT NOT NULL,
	buyer_id       TEXT,
	call_summary   TEXT NOT NULL DEFAULT '',
	key_takeaways  TEXT[] NOT NULL DEFAULT '{}',
	extracted_data JSONB,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_call_intelligence_deal ON call_intelligence(deal_id);

CREATE TABLE IF NOT EXISTS buyer_deal_scores (
	id                UUID PRIMARY KEY,
	buyer_id          TEXT NOT NULL,
	deal_id           TEXT NOT NULL,
	composite_score   INT NOT NULL,
	geography_score   INT NOT NULL,
	service_score     INT NOT NULL,
	acquisition_score INT NOT NULL,
	portfolio_score   INT NOT NULL,
	thesis_bonus      INT NOT NULL DEFAULT 0,
	fit_reasoning     TEXT NOT NULL DEFAULT '',
	data_completeness TEXT NOT NULL DEFAULT 'Low',
	scored_at         TIMESTAMPTZ NOT NULL,
	approved          BOOLEAN,
	passed            BOOLEAN,
	hidden            BOOLEAN,
	override_score    INT,
	UNIQUE (buyer_id, deal_id)
);
CREATE INDEX IF NOT EXISTS idx_buyer_deal_scores_deal ON buyer_deal_scores(deal_id);
`

// sqliteSchema mirrors the Postgres schema for the local backend. Array
// and JSON columns are stored as JSON-encoded TEXT.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trackers (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	industry           TEXT NOT NULL DEFAULT '',
	geography_weight   INTEGER,
	size_weight        INTEGER,
	service_mix_weight INTEGER,
	owner_goals_weight INTEGER,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS deals (
	id                TEXT PRIMARY KEY,
	tracker_id        TEXT NOT NULL,
	name              TEXT NOT NULL,
	revenue           REAL,
	ebitda_amount     REAL,
	ebitda_percentage REAL,
	location_count    INTEGER,
	geography         TEXT NOT NULL DEFAULT '[]',
	headquarters      TEXT NOT NULL DEFAULT '',
	service_mix       TEXT NOT NULL DEFAULT '',
	business_model    TEXT NOT NULL DEFAULT '',
	owner_goals       TEXT NOT NULL DEFAULT '',
	industry_type     TEXT NOT NULL DEFAULT '',
	created_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS buyers (
	id                        TEXT PRIMARY KEY,
	tracker_id                TEXT NOT NULL,
	pe_firm_name              TEXT NOT NULL,
	platform_company_name     TEXT,
	hq_state                  TEXT,
	hq_city                   TEXT,
	target_geographies        TEXT NOT NULL DEFAULT '[]',
	geographic_footprint      TEXT NOT NULL DEFAULT '[]',
	service_regions           TEXT NOT NULL DEFAULT '[]',
	geographic_exclusions     TEXT NOT NULL DEFAULT '[]',
	min_revenue               REAL,
	max_revenue               REAL,
	revenue_sweet_spot        REAL,
	min_ebitda                REAL,
	max_ebitda                REAL,
	ebitda_sweet_spot         REAL,
	services_offered          TEXT,
	target_services           TEXT NOT NULL DEFAULT '[]',
	service_mix_prefs         TEXT,
	industry_exclusions       TEXT NOT NULL DEFAULT '[]',
	owner_transition_goals    TEXT,
	owner_roll_requirement    TEXT,
	thesis_summary            TEXT,
	key_quotes                TEXT NOT NULL DEFAULT '[]',
	business_model_prefs      TEXT,
	business_model_exclusions TEXT,
	acquisition_appetite      TEXT,
	acquisition_frequency     TEXT,
	total_acquisitions        INTEGER,
	last_acquisition_date     DATETIME,
	deal_breakers             TEXT NOT NULL DEFAULT '[]',
	created_at                DATETIME NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_buyers_tracker ON buyers(tracker_id);

CREATE TABLE IF NOT EXISTS call_intelligence (
	id             TEXT PRIMARY KEY,
	deal_id        TEXT NOT NULL,
	buyer_id       TEXT,
	call_summary   TEXT NOT NULL DEFAULT '',
	key_takeaways  TEXT NOT NULL DEFAULT '[]',
	extracted_data TEXT,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_call_intelligence_deal ON call_intelligence(deal_id);

CREATE TABLE IF NOT EXISTS buyer_deal_scores (
	id                TEXT PRIMARY KEY,
	buyer_id          TEXT NOT NULL,
	deal_id           TEXT NOT NULL,
	composite_score   INTEGER NOT NULL,
	geography_score   INTEGER NOT NULL,
	service_score     INTEGER NOT NULL,
	acquisition_score INTEGER NOT NULL,
	portfolio_score   INTEGER NOT NULL,
	thesis_bonus      INTEGER NOT NULL DEFAULT 0,
	fit_reasoning     TEXT NOT NULL DEFAULT '',
	data_completeness TEXT NOT NULL DEFAULT 'Low',
	scored_at         DATETIME NOT NULL,
	approved          INTEGER,
	passed            INTEGER,
	hidden            INTEGER,
	override_score    INTEGER,
	UNIQUE (buyer_id, deal_id)
);
CREATE INDEX IF NOT EXISTS idx_buyer_deal_scores_deal ON buyer_deal_scores(deal_id);
`
