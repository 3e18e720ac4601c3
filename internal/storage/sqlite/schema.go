// ABOUTME: SQLite database schema for brand memory storage
// ABOUTME: Creates profile, voice sample, tone, pattern, and learning tables
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- One profile per business; campaign preferences and location are JSON
CREATE TABLE IF NOT EXISTS business_profiles (
    business_id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    industry TEXT NOT NULL DEFAULT '',
    business_type TEXT NOT NULL DEFAULT '',
    location TEXT,
    target_audience TEXT NOT NULL DEFAULT '',
    unique_selling_proposition TEXT NOT NULL DEFAULT '',
    brand_personality TEXT NOT NULL DEFAULT '',
    campaign_preferences TEXT NOT NULL DEFAULT '{}',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

-- Voice samples are append/remove only; seq keeps insertion order
CREATE TABLE IF NOT EXISTS voice_samples (
    id TEXT PRIMARY KEY,
    business_id TEXT NOT NULL REFERENCES business_profiles(business_id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    text TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL
);

-- One tone configuration per business
CREATE TABLE IF NOT EXISTS tone_configurations (
    business_id TEXT PRIMARY KEY,
    preset TEXT NOT NULL DEFAULT '',
    custom_description TEXT NOT NULL DEFAULT '',
    formality INTEGER NOT NULL CHECK (formality BETWEEN 1 AND 5),
    humor INTEGER NOT NULL CHECK (humor BETWEEN 0 AND 3),
    enthusiasm INTEGER NOT NULL CHECK (enthusiasm BETWEEN 1 AND 5),
    examples TEXT NOT NULL DEFAULT '[]',
    apply_to_all_content INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

-- Discovered content patterns; inactive rows are kept for audit
CREATE TABLE IF NOT EXISTS content_patterns (
    id TEXT PRIMARY KEY,
    business_id TEXT NOT NULL,
    pattern_type TEXT NOT NULL CHECK (pattern_type IN ('topic', 'format', 'hook', 'cta')),
    pattern_value TEXT NOT NULL,
    campaign_type TEXT NOT NULL DEFAULT '',
    platform TEXT NOT NULL DEFAULT '',
    avg_engagement_rate REAL NOT NULL DEFAULT 0,
    avg_reach REAL NOT NULL DEFAULT 0,
    sample_size INTEGER NOT NULL DEFAULT 0,
    confidence_score REAL NOT NULL DEFAULT 0 CHECK (confidence_score BETWEEN 0 AND 1),
    examples TEXT NOT NULL DEFAULT '[]',
    is_active INTEGER NOT NULL DEFAULT 1,
    discovered_at DATETIME NOT NULL,
    last_validated_at DATETIME NOT NULL
);

-- Plain-language learnings; dismissal is permanent
CREATE TABLE IF NOT EXISTS learnings (
    id TEXT PRIMARY KEY,
    business_id TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    insight TEXT NOT NULL,
    data_points INTEGER NOT NULL DEFAULT 0,
    confidence REAL NOT NULL DEFAULT 0,
    recommendation TEXT NOT NULL DEFAULT '',
    is_dismissed INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voice_samples_business ON voice_samples(business_id, seq);
CREATE INDEX IF NOT EXISTS idx_patterns_business ON content_patterns(business_id, is_active, pattern_type);
CREATE INDEX IF NOT EXISTS idx_patterns_confidence ON content_patterns(confidence_score);
CREATE INDEX IF NOT EXISTS idx_learnings_business ON learnings(business_id, is_dismissed);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
